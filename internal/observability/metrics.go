package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// HTTPRequests counts handled requests by path, method and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "portal_http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"path", "method", "status"},
	)
	// HTTPErrors counts requests that resolved to a domain error.
	HTTPErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "portal_http_errors_total", Help: "Total HTTP requests that failed"},
		[]string{"path", "method", "code"},
	)
	// ApplicationsSubmitted counts successful application submissions.
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_applications_submitted_total", Help: "Total applications submitted"},
	)
	// EligibilityRejections counts submissions blocked by eligibility rules.
	EligibilityRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "portal_eligibility_rejections_total", Help: "Total submissions rejected by eligibility checks"},
		[]string{"reason"},
	)
	// AssistantRequests counts AI gateway calls by endpoint and outcome.
	AssistantRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "portal_assistant_requests_total", Help: "Total AI assistant requests"},
		[]string{"endpoint", "outcome"},
	)
)

// Register installs all collectors on the default registry.
func Register() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPErrors,
		ApplicationsSubmitted,
		EligibilityRejections,
		AssistantRequests,
	)
}
