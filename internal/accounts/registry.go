package accounts

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/roach88/contactlens/internal/provider"
)

// DefaultSummaryColumn is used when a declaration names no summary column.
const DefaultSummaryColumn = "data1"

var dataColumn = regexp.MustCompile(`^data([1-9]|10)$`)

// Registry is a lazily initialized, process-lifetime cache of linked-account
// data kinds. All methods are safe for concurrent use.
//
// Discovery runs once. A failure is cached as an empty catalog, except when
// the caller's context ended first; the next caller then retries.
type Registry struct {
	resolver InfoResolver
	logger   *slog.Logger
	reserved map[string]bool

	mu  sync.Mutex
	cat *catalog
}

type catalog struct {
	types      []MimeType
	byMimetype map[string][]MimeType
	byAccount  map[string][]MimeType
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report discovery failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReservedMimetypes names further mimetypes that linked accounts may
// not claim. The standard contact-data kinds are always reserved.
func WithReservedMimetypes(mimetypes ...string) Option {
	return func(r *Registry) {
		for _, m := range mimetypes {
			r.reserved[m] = true
		}
	}
}

// NewRegistry returns a registry that consults resolver on first use.
func NewRegistry(resolver InfoResolver, opts ...Option) *Registry {
	r := &Registry{
		resolver: resolver,
		logger:   slog.Default(),
		reserved: make(map[string]bool),
	}
	for _, m := range provider.StandardMimetypes {
		r.reserved[m] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MimeTypes returns every known linked-account data kind, in declaration
// order. The first call performs discovery using ctx.
func (r *Registry) MimeTypes(ctx context.Context) []MimeType {
	return r.load(ctx).types
}

// ForAccountType returns the data kinds declared by one account type.
func (r *Registry) ForAccountType(ctx context.Context, accountType string) []MimeType {
	return r.load(ctx).byAccount[accountType]
}

// Lookup finds the declaration for mimetype made by accountType. A row
// without an account type takes the first declaration.
func (r *Registry) Lookup(ctx context.Context, mimetype, accountType string) (MimeType, bool) {
	candidates := r.load(ctx).byMimetype[mimetype]
	if len(candidates) == 0 {
		return MimeType{}, false
	}
	if accountType == "" {
		return candidates[0], true
	}
	for _, c := range candidates {
		if c.AccountType == accountType {
			return c, true
		}
	}
	return MimeType{}, false
}

func (r *Registry) load(ctx context.Context) *catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cat != nil {
		return r.cat
	}

	cat, err := r.discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			r.logger.Warn("linked account discovery interrupted", "error", err)
			return cat
		}
		r.logger.Error("linked account discovery failed", "error", err)
	}
	r.cat = cat
	return cat
}

func (r *Registry) discover(ctx context.Context) (*catalog, error) {
	cat := &catalog{
		byMimetype: make(map[string][]MimeType),
		byAccount:  make(map[string][]MimeType),
	}
	if r.resolver == nil {
		return cat, nil
	}

	auths, err := r.resolver.Authenticators(ctx)
	if err != nil {
		return cat, err
	}

	for _, auth := range auths {
		if auth.AccountType == "" {
			r.logger.Warn("skipping authenticator without account type")
			continue
		}
		for _, kind := range auth.Kinds {
			mt, ok := r.descriptor(auth.AccountType, kind)
			if !ok {
				continue
			}
			cat.types = append(cat.types, mt)
			cat.byMimetype[mt.Mimetype] = append(cat.byMimetype[mt.Mimetype], mt)
			cat.byAccount[mt.AccountType] = append(cat.byAccount[mt.AccountType], mt)
		}
	}
	r.logger.Debug("linked account kinds discovered", "count", len(cat.types))
	return cat, nil
}

func (r *Registry) descriptor(accountType string, kind DataKind) (MimeType, bool) {
	mimetype := strings.TrimSpace(kind.Mimetype)
	if mimetype == "" {
		r.logger.Warn("skipping data kind without mimetype", "account_type", accountType)
		return MimeType{}, false
	}
	if r.reserved[mimetype] {
		r.logger.Warn("skipping data kind that shadows a standard kind",
			"account_type", accountType, "mimetype", mimetype)
		return MimeType{}, false
	}

	summary := kind.SummaryColumn
	if summary == "" {
		summary = DefaultSummaryColumn
	}
	if !dataColumn.MatchString(summary) {
		r.logger.Warn("skipping data kind with invalid summary column",
			"account_type", accountType, "mimetype", mimetype, "column", summary)
		return MimeType{}, false
	}
	if kind.DetailColumn != "" && !dataColumn.MatchString(kind.DetailColumn) {
		r.logger.Warn("skipping data kind with invalid detail column",
			"account_type", accountType, "mimetype", mimetype, "column", kind.DetailColumn)
		return MimeType{}, false
	}

	return MimeType{
		AccountType:   accountType,
		Mimetype:      mimetype,
		Icon:          kind.Icon,
		SummaryColumn: summary,
		DetailColumn:  kind.DetailColumn,
	}, true
}
