// Package resolver implements the identifier-resolution session.
//
// A session cross-references the identifiers used by a parsed template
// against the configuration store, collects operator-supplied names for the
// unknown ones through an interactive [Prompter], merges accepted answers
// into the store, and persists the store once. Skipped identifiers are never
// written: unknown status is purely a function of current store contents, so
// an id skipped today is offered again next session.
package resolver

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/errors"
	"github.com/piview/piview/pkg/layout"
	"github.com/piview/piview/pkg/pi"
)

// standardCategories seeds the pin-type suggestion list with the structure
// categories every colony uses, in addition to whatever categories the
// store already knows.
var standardCategories = []string{
	"Extractor",
	"Launchpad",
	"Basic Industrial Facility",
	"Advanced Industrial Facility",
	"High-Tech Industrial Facility",
	"Storage Facility",
	"Command Center",
}

// Request is one namespace batch handed to the prompting surface: the
// unknown identifier values in stable order, suggestion strings the surface
// may offer (selection is never restricted to them), and an optional
// context hint (the template's planet name, for pin-type batches).
type Request struct {
	Session     uuid.UUID
	Namespace   pi.Namespace
	Candidates  []int64
	Suggestions []string
	ContextHint string
}

// Answer is the outcome for a single candidate id. A non-accepted answer
// means the operator left the id unresolved; it is not written anywhere.
type Answer struct {
	Value    int64
	Name     string
	Category string
	Accepted bool
}

// Prompter is the contract between the resolver and the interactive
// collaborator that collects answers from the operator.
//
// ResolveBatch must produce exactly one Answer per candidate id, in request
// order, and return them as a single batch — the resolver acts only once
// the whole batch is in. Cancelling the dialog is expressed as a batch of
// non-accepted answers, not as an error; an error return means the
// prompting surface itself failed and aborts the session.
type Prompter interface {
	ResolveBatch(ctx context.Context, req Request) ([]Answer, error)
}

// State names the phase a session ended in.
type State string

// Terminal session states.
const (
	StateNoUnknowns    State = "no-unknowns"
	StateDone          State = "done"
	StateDoneWithError State = "done-with-error"
)

// Result is the completion notification of a session.
type Result struct {
	Session  uuid.UUID
	State    State
	Resolved int // entries merged into the store this session
	Skipped  int // candidates left unresolved
}

// Resolver drives resolution sessions against one store and one prompter.
type Resolver struct {
	store    *config.Store
	prompter Prompter
	logger   *log.Logger
}

// New creates a resolver. A nil logger falls back to the default logger.
func New(store *config.Store, prompter Prompter, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{store: store, prompter: prompter, logger: logger}
}

// batch pairs a namespace with its unknown candidates.
type batch struct {
	namespace  pi.Namespace
	candidates []int64
}

// scan computes the unknown identifiers per namespace. Batch order follows
// the original resolution flow: commodities, pin types, schematics.
func (r *Resolver) scan(tmpl *layout.Template) []batch {
	cfg := r.store.Configuration()
	batches := []batch{
		{pi.NamespaceCommodity, unknown(tmpl.DistinctCommodityIDs(), cfg.KnownValues(pi.NamespaceCommodity))},
		{pi.NamespacePinType, unknown(tmpl.DistinctPinTypeIDs(), cfg.KnownValues(pi.NamespacePinType))},
		{pi.NamespaceSchematic, unknown(tmpl.DistinctSchematicIDs(), cfg.KnownValues(pi.NamespaceSchematic))},
	}
	return batches
}

// unknown filters ids down to those absent from known, preserving order.
func unknown(ids []int64, known map[int64]bool) []int64 {
	var out []int64
	for _, id := range ids {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

// Unknowns returns the total number of identifiers the template references
// that the store cannot resolve. Zero means a session would be a no-op.
func (r *Resolver) Unknowns(tmpl *layout.Template) int {
	n := 0
	for _, b := range r.scan(tmpl) {
		n += len(b.candidates)
	}
	return n
}

// Run executes one resolution session: scan, one dialog batch per namespace
// with unknowns, merge accepted answers, save once.
//
// When no identifier is unknown the session is a no-op: no dialog is shown,
// the store is not saved, and the result reports zero resolved entries.
//
// A save failure is returned as a PERSISTENCE_ERROR alongside a result that
// still carries the resolved count; the accepted entries remain in the
// in-memory configuration so the operator's data entry is not lost.
func (r *Resolver) Run(ctx context.Context, tmpl *layout.Template) (Result, error) {
	res := Result{Session: uuid.New()}
	logger := r.logger.With("session", res.Session.String()[:8])

	batches := r.scan(tmpl)
	total := 0
	for _, b := range batches {
		total += len(b.candidates)
		logger.Debug("scanned namespace", "namespace", b.namespace.String(), "unknown", len(b.candidates))
	}
	if total == 0 {
		res.State = StateNoUnknowns
		logger.Debug("all referenced identifiers known")
		return res, nil
	}

	// The planet display name is always offered as a context hint, but only
	// recorded on new entries when the planet type itself is known.
	planetHint := r.store.PlanetName(tmpl.PlanetTypeID)
	recordPlanet := ""
	if _, ok := r.store.Lookup(pi.PlanetType(tmpl.PlanetTypeID)); ok {
		recordPlanet = planetHint
	}

	for _, b := range batches {
		if len(b.candidates) == 0 {
			continue
		}
		req := r.request(res.Session, b, planetHint)

		answers, err := r.prompter.ResolveBatch(ctx, req)
		if err != nil {
			return res, errors.Wrap(errors.ErrCodeInternal, err, "resolution dialog failed for %s batch", b.namespace)
		}

		accepted, skipped := r.merge(logger, b.namespace, recordPlanet, answers)
		res.Resolved += accepted
		res.Skipped += skipped
	}

	if res.Resolved == 0 {
		res.State = StateDone
		logger.Info("resolution session ended with no accepted answers", "skipped", res.Skipped)
		return res, nil
	}

	if err := r.store.Save(); err != nil {
		res.State = StateDoneWithError
		logger.Error("failed to persist configuration", "resolved", res.Resolved, "err", err)
		return res, err
	}

	res.State = StateDone
	logger.Info("resolution session complete", "resolved", res.Resolved, "skipped", res.Skipped)
	return res, nil
}

// request builds the dialog request for a namespace batch. Pin-type batches
// get category suggestions and the planet context hint; commodity batches
// get known commodity names; schematic names are free text only.
func (r *Resolver) request(session uuid.UUID, b batch, planet string) Request {
	req := Request{
		Session:    session,
		Namespace:  b.namespace,
		Candidates: b.candidates,
	}
	cfg := r.store.Configuration()
	switch b.namespace {
	case pi.NamespacePinType:
		req.Suggestions = mergeSuggestions(standardCategories, cfg.Categories())
		req.ContextHint = planet
	case pi.NamespaceCommodity:
		req.Suggestions = cfg.Names(pi.NamespaceCommodity)
	}
	return req
}

// merge writes accepted answers into the store. Blank or invalid names are
// downgraded to skipped, never stored.
func (r *Resolver) merge(logger *log.Logger, ns pi.Namespace, planet string, answers []Answer) (accepted, skipped int) {
	for _, a := range answers {
		name := strings.TrimSpace(a.Name)
		category := strings.TrimSpace(a.Category)

		if !a.Accepted || name == "" {
			skipped++
			continue
		}
		if err := errors.ValidateEntryName(name); err != nil {
			logger.Warn("discarding invalid answer", "namespace", ns.String(), "id", a.Value, "err", err)
			skipped++
			continue
		}

		entry := config.Entry{Name: name, Category: category}
		if ns == pi.NamespacePinType {
			// The pin-type dialog collects a single value that doubles as
			// the category; the planet hint is recorded for display.
			if entry.Category == "" {
				entry.Category = name
			}
			entry.Planet = planet
		}

		r.store.Upsert(pi.Identifier{Namespace: ns, Value: a.Value}, entry)
		accepted++
		logger.Debug("accepted answer", "namespace", ns.String(), "id", a.Value, "name", name)
	}
	return accepted, skipped
}

// mergeSuggestions combines seed suggestions with learned ones, dropping
// duplicates while keeping the seeds first.
func mergeSuggestions(seeds, learned []string) []string {
	seen := make(map[string]bool, len(seeds))
	out := make([]string, 0, len(seeds)+len(learned))
	for _, s := range seeds {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range learned {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
