package insight_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal/insight"
)

var _ = Describe("HTTPClient", func() {
	var (
		server *httptest.Server
		client *insight.HTTPClient
		logger *slog.Logger

		lastPath string
		lastBody map[string]interface{}
		respond  func(w http.ResponseWriter)
	)

	newClient := func(baseURL string) *insight.HTTPClient {
		return insight.NewHTTPClient(insight.Config{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		}, logger)
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		respond = func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok": true}`))
		}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			lastBody = map[string]interface{}{}
			Expect(json.NewDecoder(r.Body).Decode(&lastBody)).To(Succeed())
			respond(w)
		}))

		client = newClient(server.URL)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("GenerateReport", func() {
		It("should post expenses and budgets to /report", func() {
			expenses := []insight.ExpensePayload{
				{Amount: 100, Category: "Food", Date: time.Now(), PaymentMethod: "Cash", Notes: "groceries"},
			}
			budgets := []insight.BudgetPayload{
				{Category: "Food", Limit: 800},
			}

			raw, err := client.GenerateReport(context.Background(), expenses, budgets)

			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(MatchJSON(`{"ok": true}`))
			Expect(lastPath).To(Equal("/report"))
			Expect(lastBody).To(HaveKey("expenses"))
			Expect(lastBody).To(HaveKey("budgets"))

			sent := lastBody["expenses"].([]interface{})[0].(map[string]interface{})
			Expect(sent).To(HaveKeyWithValue("paymentMethod", "Cash"))
			Expect(sent).To(HaveKeyWithValue("notes", "groceries"))
		})
	})

	Describe("GetSuggestions", func() {
		It("should post expenses to /suggestions", func() {
			raw, err := client.GetSuggestions(context.Background(), []insight.ExpensePayload{})

			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(MatchJSON(`{"ok": true}`))
			Expect(lastPath).To(Equal("/suggestions"))
			Expect(lastBody).To(HaveKey("expenses"))
		})
	})

	Describe("failure handling", func() {
		It("should wrap a non-success status as ErrUpstream", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
			}

			raw, err := client.GenerateReport(context.Background(), nil, nil)

			Expect(raw).To(BeNil())
			Expect(insight.IsUpstreamError(err)).To(BeTrue())
		})

		It("should wrap a malformed body as ErrUpstream", func() {
			respond = func(w http.ResponseWriter) {
				w.Write([]byte("not json at all"))
			}

			raw, err := client.GetSuggestions(context.Background(), nil)

			Expect(raw).To(BeNil())
			Expect(insight.IsUpstreamError(err)).To(BeTrue())
		})

		It("should wrap an unreachable host as ErrUpstream", func() {
			unreachable := newClient("http://127.0.0.1:1")

			raw, err := unreachable.GenerateReport(context.Background(), nil, nil)

			Expect(raw).To(BeNil())
			Expect(insight.IsUpstreamError(err)).To(BeTrue())
		})
	})
})
