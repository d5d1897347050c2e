package assistant

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"

	"jarvis/pkg/textutil"
)

// Handler executes one matched command. cmd is the normalized
// utterance, match the submatch data of the rule's pattern.
type Handler func(ctx context.Context, cmd string, match []string) (string, error)

type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Handle  Handler
}

// Router scans rules in registration order and dispatches the first
// match. Order is the tie-break when several patterns could match, so
// more specific patterns must be registered before generic ones.
type Router struct {
	rules    []Rule
	fallback Handler
}

func NewRouter(fallback Handler) *Router {
	return &Router{fallback: fallback}
}

func (r *Router) Register(name, pattern string, h Handler) {
	r.rules = append(r.rules, Rule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Handle:  h,
	})
}

func (r *Router) Rules() []Rule {
	return r.rules
}

// Route dispatches one utterance and always produces a user-visible
// string. Handler failures are non-fatal: they come back as an error
// message and the session keeps accepting utterances.
func (r *Router) Route(ctx context.Context, utterance string) string {
	cmd := textutil.Normalize(utterance)

	for _, rule := range r.rules {
		m := rule.Pattern.FindStringSubmatch(cmd)
		if m == nil {
			continue
		}

		log.Debug("Matched rule", "rule", rule.Name, "cmd", cmd)

		resp, err := invoke(ctx, rule.Handle, cmd, m)
		if err != nil {
			log.Warn("Handler failed", "rule", rule.Name, "err", err)
			return fmt.Sprintf("Error processing command: %v", err)
		}
		return resp
	}

	log.Debug("No rule matched, falling back", "cmd", cmd)

	resp, err := invoke(ctx, r.fallback, cmd, nil)
	if err != nil {
		return fmt.Sprintf("Error processing command: %v", err)
	}
	return resp
}

func invoke(ctx context.Context, h Handler, cmd string, m []string) (resp string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return h(ctx, cmd, m)
}
