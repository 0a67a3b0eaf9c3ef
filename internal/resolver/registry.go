// Package resolver indexes schema resources and resolves $ref values to
// concrete schema locations, fetching external documents on demand.
package resolver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/dialect"
	"github.com/jacoelho/jsonschema/internal/loader"
	"github.com/jacoelho/jsonschema/internal/pointer"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// DefaultMaxRefChain bounds consecutive $ref hops followed by Follow.
const DefaultMaxRefChain = 64

var errNoFetcher = errors.New("no fetcher configured for external references")

// Config configures a Registry.
type Config struct {
	Fetcher        loader.Fetcher
	Logger         *slog.Logger
	DefaultDialect dialect.Dialect
	MaxDepth       int
	MaxRefChain    int
	// StrictDialect rejects unknown $schema values instead of falling back
	// to DefaultDialect.
	StrictDialect bool
}

// Target is a resolved schema location.
type Target struct {
	Value   jsonvalue.Value
	Key     string
	Doc     string
	Base    string
	Pointer pointer.Pointer
	Dialect dialect.Dialect
}

type scope struct {
	ptr     pointer.Pointer
	base    string
	dialect dialect.Dialect
}

type document struct {
	uri    string
	root   jsonvalue.Value
	scopes []scope
}

type resource struct {
	doc *document
	ptr pointer.Pointer
}

// Registry holds schema documents keyed by absolute URI. It is not safe for
// concurrent writers; compile once, then share the compiled result.
type Registry struct {
	cfg       Config
	docs      map[string]*document
	resources map[string]resource
	anchors   map[string]string
	resolved  map[string]Target
}

// New creates an empty registry.
func New(cfg Config) *Registry {
	cfg.MaxRefChain = cmp.Or(max(cfg.MaxRefChain, 0), DefaultMaxRefChain)
	if cfg.DefaultDialect == dialect.Unknown {
		cfg.DefaultDialect = dialect.Default
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		cfg:       cfg,
		docs:      make(map[string]*document),
		resources: make(map[string]resource),
		anchors:   make(map[string]string),
		resolved:  make(map[string]Target),
	}
}

// Add registers root under uri and indexes its embedded resources and
// anchors. A relative uri is resolved against DefaultBaseURI. It returns the
// canonical document URI.
func (r *Registry) Add(uri string, root jsonvalue.Value) (string, error) {
	docURI, err := Absolute(cmp.Or(uri, DefaultBaseURI))
	if err != nil {
		return "", err
	}
	if _, ok := r.docs[docURI]; ok {
		return "", fmt.Errorf("schema resource %s already registered", docURI)
	}
	d, err := r.dialectOf(root, "", r.cfg.DefaultDialect)
	if err != nil {
		return "", err
	}
	doc := &document{uri: docURI, root: root}
	r.docs[docURI] = doc
	r.resources[docURI] = resource{doc: doc}
	doc.scopes = append(doc.scopes, scope{base: docURI, dialect: d})
	if err := r.index(doc, root, nil, docURI, d); err != nil {
		delete(r.docs, docURI)
		delete(r.resources, docURI)
		return "", err
	}
	return docURI, nil
}

// Root returns the target for the root of a registered document.
func (r *Registry) Root(docURI string) (Target, error) {
	doc, ok := r.docs[docURI]
	if !ok {
		return Target{}, fmt.Errorf("schema resource %s not registered", docURI)
	}
	return r.target(doc, nil)
}

func (r *Registry) dialectOf(v jsonvalue.Value, ptr string, fallback dialect.Dialect) (dialect.Dialect, error) {
	raw, ok := v.Lookup("$schema")
	if !ok {
		return fallback, nil
	}
	if raw.Kind() != jsonvalue.KindString {
		return dialect.Unknown, jsonerrors.NewSchemaError(ptr, "$schema", "must be a string")
	}
	d, known := dialect.Lookup(raw.Str())
	if known {
		return d, nil
	}
	if r.cfg.StrictDialect {
		return dialect.Unknown, jsonerrors.NewDialectError(ptr, raw.Str())
	}
	r.cfg.Logger.Debug("unknown $schema, using default dialect",
		slog.String("schema", raw.Str()),
		slog.String("dialect", fallback.String()))
	return fallback, nil
}

// index walks schema-bearing keywords recording $id scopes and anchors.
func (r *Registry) index(doc *document, v jsonvalue.Value, ptr pointer.Pointer, base string, d dialect.Dialect) error {
	if v.Kind() != jsonvalue.KindObject {
		return nil
	}
	_, hasRef := v.Lookup("$ref")
	if raw, ok := v.Lookup(d.IDKeyword()); ok && raw.Kind() == jsonvalue.KindString && !(hasRef && d.RefOverridesSiblings()) {
		if len(ptr) == 0 {
			if err := r.rootID(doc, base, d, raw.Str()); err != nil {
				return err
			}
			base = doc.scopes[0].base
		} else {
			var err error
			base, d, err = r.enterResource(doc, v, ptr, base, d, raw.Str())
			if err != nil {
				return err
			}
		}
	}
	if d.HasAnchor() {
		for _, kw := range []string{"$anchor", "$dynamicAnchor"} {
			if raw, ok := v.Lookup(kw); ok && raw.Kind() == jsonvalue.KindString {
				r.anchors[base+"#"+raw.Str()] = Key(doc.uri, ptr.String())
			}
		}
	}

	for _, m := range v.Members() {
		switch {
		case singleSchemaKeywords[m.Key] || (m.Key == "items" && m.Value.Kind() != jsonvalue.KindArray):
			if err := r.index(doc, m.Value, ptr.Append(m.Key), base, d); err != nil {
				return err
			}
		case arraySchemaKeywords[m.Key] || m.Key == "items":
			for i, item := range m.Value.Items() {
				if err := r.index(doc, item, ptr.Append(m.Key).AppendIndex(i), base, d); err != nil {
					return err
				}
			}
		case mapSchemaKeywords[m.Key]:
			for _, entry := range m.Value.Members() {
				if err := r.index(doc, entry.Value, ptr.Append(m.Key, entry.Key), base, d); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *Registry) rootID(doc *document, base string, d dialect.Dialect, id string) error {
	if d.PlainNameIDs() && strings.HasPrefix(id, "#") {
		r.anchors[base+id] = Key(doc.uri, "")
		return nil
	}
	uri, frag, err := splitFragment(base, id)
	if err != nil {
		return jsonerrors.NewSchemaError("", d.IDKeyword(), "invalid uri: %v", err)
	}
	doc.scopes[0].base = uri
	if uri != doc.uri {
		if _, exists := r.resources[uri]; exists {
			return jsonerrors.NewSchemaError("", d.IDKeyword(), "duplicate resource %s", uri)
		}
		r.resources[uri] = resource{doc: doc}
	}
	if frag != "" && d.PlainNameIDs() {
		r.anchors[uri+"#"+frag] = Key(doc.uri, "")
	}
	return nil
}

func (r *Registry) enterResource(doc *document, v jsonvalue.Value, ptr pointer.Pointer, base string, d dialect.Dialect, id string) (string, dialect.Dialect, error) {
	loc := ptr.String()
	if d.PlainNameIDs() && strings.HasPrefix(id, "#") {
		r.anchors[base+id] = Key(doc.uri, loc)
		return base, d, nil
	}
	uri, frag, err := splitFragment(base, id)
	if err != nil {
		return "", d, jsonerrors.NewSchemaError(loc, d.IDKeyword(), "invalid uri: %v", err)
	}
	if existing, ok := r.resources[uri]; ok && (existing.doc != doc || !slices.Equal(existing.ptr, ptr)) {
		return "", d, jsonerrors.NewSchemaError(loc, d.IDKeyword(), "duplicate resource %s", uri)
	}
	if d >= dialect.Draft2019 {
		d, err = r.dialectOf(v, loc, d)
		if err != nil {
			return "", d, err
		}
	}
	r.resources[uri] = resource{doc: doc, ptr: slices.Clone(ptr)}
	doc.scopes = append(doc.scopes, scope{ptr: slices.Clone(ptr), base: uri, dialect: d})
	if frag != "" && d.PlainNameIDs() {
		r.anchors[uri+"#"+frag] = Key(doc.uri, loc)
	}
	return uri, d, nil
}

// scopeAt returns the innermost $id scope containing ptr.
func (doc *document) scopeAt(ptr pointer.Pointer) scope {
	best := doc.scopes[0]
	for _, s := range doc.scopes[1:] {
		if len(s.ptr) > len(best.ptr) && len(s.ptr) <= len(ptr) && slices.Equal(s.ptr, ptr[:len(s.ptr)]) {
			best = s
		}
	}
	return best
}

func (r *Registry) target(doc *document, ptr pointer.Pointer) (Target, error) {
	v, ok := ptr.Lookup(doc.root)
	if !ok {
		return Target{}, fmt.Errorf("pointer %q not found in %s", ptr.String(), doc.uri)
	}
	s := doc.scopeAt(ptr)
	return Target{
		Value:   v,
		Key:     Key(doc.uri, ptr.String()),
		Doc:     doc.uri,
		Base:    s.base,
		Pointer: ptr,
		Dialect: s.dialect,
	}, nil
}

// Locate returns the target at ptr inside the registered document docURI.
func (r *Registry) Locate(docURI string, ptr pointer.Pointer) (Target, error) {
	doc, ok := r.docs[docURI]
	if !ok {
		return Target{}, fmt.Errorf("schema resource %s not registered", docURI)
	}
	return r.target(doc, ptr)
}

// Logger returns the registry logger.
func (r *Registry) Logger() *slog.Logger {
	return r.cfg.Logger
}

// Resolve resolves ref against base. Unknown documents are fetched through
// the configured fetcher, registered and memoized.
func (r *Registry) Resolve(ctx context.Context, base, ref string) (Target, error) {
	memoKey := base + "\x00" + ref
	if t, ok := r.resolved[memoKey]; ok {
		return t, nil
	}
	t, err := r.resolve(ctx, base, ref)
	if err != nil {
		return Target{}, &jsonerrors.UnresolvedReferenceError{Ref: ref, Base: base, Err: err}
	}
	r.resolved[memoKey] = t
	return t, nil
}

func (r *Registry) resolve(ctx context.Context, base, ref string) (Target, error) {
	uri, frag, err := splitFragment(base, ref)
	if err != nil {
		return Target{}, err
	}
	res, ok := r.resources[uri]
	if !ok {
		if err := r.fetch(ctx, uri); err != nil {
			return Target{}, err
		}
		res = r.resources[uri]
	}
	if frag == "" {
		return r.target(res.doc, res.ptr)
	}
	if strings.HasPrefix(frag, "/") {
		rel, err := pointer.Parse(frag)
		if err != nil {
			return Target{}, err
		}
		return r.target(res.doc, res.ptr.Append(rel...))
	}
	key, ok := r.anchors[uri+"#"+frag]
	if !ok {
		return Target{}, fmt.Errorf("anchor %q not found in %s", frag, uri)
	}
	docURI, loc, _ := strings.Cut(key, "#")
	ptr, err := pointer.Parse(loc)
	if err != nil {
		return Target{}, err
	}
	return r.target(r.docs[docURI], ptr)
}

func (r *Registry) fetch(ctx context.Context, uri string) error {
	if r.cfg.Fetcher == nil {
		return errNoFetcher
	}
	r.cfg.Logger.Debug("fetch external schema", slog.String("uri", uri))
	data, err := loader.ReadAll(ctx, r.cfg.Fetcher, uri)
	if err != nil {
		return err
	}
	var opts []jsontext.Options
	if r.cfg.MaxDepth > 0 {
		opts = append(opts, jsontext.MaxDepth(r.cfg.MaxDepth))
	}
	v, err := jsontext.Parse(data, opts...)
	if err != nil {
		return fmt.Errorf("parse %s: %w", uri, err)
	}
	if _, err := r.Add(uri, v); err != nil {
		return err
	}
	return nil
}

// Follow resolves ref and keeps following $ref members of each target while
// tracking the active chain. Re-entering a location already on the chain, or
// a chain longer than MaxRefChain, fails with *errors.CyclicReferenceError.
func (r *Registry) Follow(ctx context.Context, base, ref string) (Target, error) {
	var chain []string
	for {
		t, err := r.Resolve(ctx, base, ref)
		if err != nil {
			return Target{}, err
		}
		if slices.Contains(chain, t.Key) {
			return Target{}, &jsonerrors.CyclicReferenceError{Cycle: append(chain, t.Key)}
		}
		chain = append(chain, t.Key)
		if len(chain) > r.cfg.MaxRefChain {
			return Target{}, &jsonerrors.CyclicReferenceError{Cycle: chain}
		}
		next, ok := t.Value.Lookup("$ref")
		if !ok || next.Kind() != jsonvalue.KindString {
			return t, nil
		}
		base, ref = t.Base, next.Str()
	}
}
