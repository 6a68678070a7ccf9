package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"space-stem-quiz/internal/domain"
)

// Metrics records quiz activity as Prometheus series.
type Metrics struct {
	gatherer prometheus.Gatherer

	sessionsOpened    *prometheus.CounterVec
	answers           *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	loginAttempts     *prometheus.CounterVec
	activeSockets     prometheus.Gauge
}

// New registers the quiz series on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		sessionsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_sessions_opened_total",
				Help: "Total number of quiz sessions opened",
			},
			[]string{"quiz"},
		),
		answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_answers_total",
				Help: "Total number of answers recorded",
			},
			[]string{"quiz", "type", "correct"},
		),
		sessionsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_sessions_completed_total",
				Help: "Total number of quiz sessions completed",
			},
			[]string{"quiz", "tier"},
		),
		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // success, unknown_user, bad_password
		),
		activeSockets: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "quiz_ws_connections_current",
				Help: "Current number of open websocket connections",
			},
		),
	}
}

func (m *Metrics) SessionOpened(quizID string) {
	m.sessionsOpened.WithLabelValues(quizID).Inc()
}

func (m *Metrics) AnswerRecorded(quizID string, questionType domain.QuestionType, correct bool) {
	m.answers.WithLabelValues(quizID, string(questionType), strconv.FormatBool(correct)).Inc()
}

func (m *Metrics) SessionCompleted(quizID string, tier domain.PerformanceTier) {
	m.sessionsCompleted.WithLabelValues(quizID, string(tier)).Inc()
}

func (m *Metrics) LoginAttempt(status string) {
	m.loginAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) SocketOpened() { m.activeSockets.Inc() }

func (m *Metrics) SocketClosed() { m.activeSockets.Dec() }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
