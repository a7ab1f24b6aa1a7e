// Package metrics defines and registers all custom Prometheus metrics for
// the API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at package init
// via promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fitlane"

// CodesIssuedTotal counts one-time codes generated and persisted, including
// re-issues that overwrote a prior code.
var CodesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_codes_issued_total",
		Help:      "Total number of one-time SMS codes issued.",
	},
)

// SMSFailuresTotal counts dispatch failures reported by the SMS gateway.
var SMSFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_sms_failures_total",
		Help:      "Total number of SMS dispatch failures.",
	},
)

// VerificationsTotal counts code verification attempts.
// Label:
//   - result: "ok", "invalid", or "expired"
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_verifications_total",
		Help:      "Total number of code verification attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of completed registrations.",
	},
)

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "user" or "admin"
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)
