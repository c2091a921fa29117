package metrics

import "github.com/prometheus/client_golang/prometheus"

// DomainMetrics counts catalog and social-graph mutations.
type DomainMetrics struct {
	entities    *prometheus.CounterVec
	likes       *prometheus.CounterVec
	friendships *prometheus.CounterVec
}

// NewDomainMetrics registers the domain counters on the provided registerer.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	entities := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_entity_mutations_total",
		Help: "Film and user mutations by kind and action.",
	}, []string{"kind", "action"})
	likes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_likes_total",
		Help: "Like edges added or removed.",
	}, []string{"action"})
	friendships := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_friendship_transitions_total",
		Help: "Friendship edge transitions by target state.",
	}, []string{"transition"})
	reg.MustRegister(entities, likes, friendships)
	return &DomainMetrics{
		entities:    entities,
		likes:       likes,
		friendships: friendships,
	}
}

// IncEntity counts a create, update or delete of a film or user.
func (d *DomainMetrics) IncEntity(kind, action string) {
	if d == nil || d.entities == nil {
		return
	}
	d.entities.WithLabelValues(normalizeLabel(kind), normalizeLabel(action)).Inc()
}

// IncLike counts a like edge change ("added" or "removed").
func (d *DomainMetrics) IncLike(action string) {
	if d == nil || d.likes == nil {
		return
	}
	d.likes.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncFriendship counts a friendship edge transition.
func (d *DomainMetrics) IncFriendship(transition string) {
	if d == nil || d.friendships == nil {
		return
	}
	d.friendships.WithLabelValues(normalizeLabel(transition)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
