package domain

import "time"

// DefaultPageSize is used when a table query carries no page size
const DefaultPageSize = 10

// Session is the per-tab sign-in state
type Session struct {
	SignedIn bool   `json:"signedIn"`
	Token    string `json:"token"`
}

// Authenticated reports whether the session carries a token and is signed in
func (s Session) Authenticated() bool {
	return s.SignedIn && s.Token != ""
}

// Tokens is the pair handed out by the remote API on sign-in
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether both tokens are present
func (t Tokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// User represents the authenticated principal
type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Avatar     string    `json:"avatar"`
	CreationAt time.Time `json:"creationAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SignInCredential represents sign-in input
type SignInCredential struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpCredential represents sign-up input
type SignUpCredential struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Avatar   string `json:"avatar,omitempty"`
}

// AuthStatus is the outcome of a sign-in or sign-up attempt
type AuthStatus string

const (
	AuthSuccess AuthStatus = "success"
	AuthFailed  AuthStatus = "failed"
)

// AuthResult represents authentication outcome
type AuthResult struct {
	Status  AuthStatus `json:"status"`
	Message string     `json:"message"`
}

// OAuthHandles exposes session establishment to an external OAuth flow
type OAuthHandles struct {
	OnSignIn func(tokens Tokens, user *User) error
	Redirect func()
}

// Customer mirrors the remote API user representation
type Customer struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Avatar     string    `json:"avatar"`
	CreationAt time.Time `json:"creationAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RowID implements Identifiable
func (c Customer) RowID() int { return c.ID }

// CustomerPayload is the body sent on customer create and update
type CustomerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar"`
}

// Category represents a product category
type Category struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Image      string    `json:"image"`
	CreationAt time.Time `json:"creationAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Product represents a catalog item
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	CreationAt  time.Time `json:"creationAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RowID implements Identifiable
func (p Product) RowID() int { return p.ID }

// ProductPayload is the body sent on product create and update
type ProductPayload struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CategoryID  int      `json:"categoryId"`
	Images      []string `json:"images"`
}

// Identifiable is implemented by every row a list view can select
type Identifiable interface {
	RowID() int
}

// SortOrder is the direction of a table sort
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort is the column sort of a table
type Sort struct {
	Key   string    `json:"key"`
	Order SortOrder `json:"order"`
}

// TableQuery is the client-held slice selector of a list screen.
// Values are never mutated in place; every change produces a new TableQuery.
type TableQuery struct {
	PageIndex int   `json:"pageIndex"`
	PageSize  int   `json:"pageSize"`
	Sort      *Sort `json:"sort,omitempty"`
	Limit     *int  `json:"limit,omitempty"`
	Offset    *int  `json:"offset,omitempty"`
}

// Table query bounds; MaxOffset keeps PageIndex * limit far from int overflow
const (
	MaxPageSize = 100
	MaxOffset   = 1 << 30
)

// Validate checks the non-negative and upper-bound invariants
func (q TableQuery) Validate() error {
	if q.PageIndex < 0 || q.PageSize < 0 || q.PageSize > MaxPageSize {
		return ErrInvalidTableQuery
	}
	if q.Limit != nil && (*q.Limit < 0 || *q.Limit > MaxPageSize) {
		return ErrInvalidTableQuery
	}
	if q.Offset != nil && (*q.Offset < 0 || *q.Offset > MaxOffset) {
		return ErrInvalidTableQuery
	}
	if q.PageIndex > MaxOffset/q.EffectiveLimit() {
		return ErrInvalidTableQuery
	}
	if q.Sort != nil && q.Sort.Order != "" && q.Sort.Order != SortAsc && q.Sort.Order != SortDesc {
		return ErrInvalidTableQuery
	}
	return nil
}

// EffectiveLimit is the page size sent to the remote API
func (q TableQuery) EffectiveLimit() int {
	if q.Limit != nil && *q.Limit > 0 {
		return *q.Limit
	}
	if q.PageSize > 0 {
		return q.PageSize
	}
	return DefaultPageSize
}

// EffectiveOffset is the row offset sent to the remote API
func (q TableQuery) EffectiveOffset() int {
	if q.Offset != nil {
		return *q.Offset
	}
	limit := q.EffectiveLimit()
	if q.PageIndex > MaxOffset/limit {
		return MaxOffset
	}
	return q.PageIndex * limit
}

// WithPage returns a copy pointing at another page
func (q TableQuery) WithPage(pageIndex int) TableQuery {
	q.PageIndex = pageIndex
	return q
}

// WithPageSize returns a copy with a new page size, reset to the first page
func (q TableQuery) WithPageSize(pageSize int) TableQuery {
	q.PageSize = pageSize
	q.PageIndex = 0
	return q
}

// WithSort returns a copy with a new sort
func (q TableQuery) WithSort(sort Sort) TableQuery {
	q.Sort = &sort
	return q
}

// Equal compares two table queries by value
func (q TableQuery) Equal(o TableQuery) bool {
	if q.PageIndex != o.PageIndex || q.PageSize != o.PageSize {
		return false
	}
	if !equalIntPtr(q.Limit, o.Limit) || !equalIntPtr(q.Offset, o.Offset) {
		return false
	}
	switch {
	case q.Sort == nil && o.Sort == nil:
		return true
	case q.Sort == nil || o.Sort == nil:
		return false
	default:
		return *q.Sort == *o.Sort
	}
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Filter holds resource-specific filter values, e.g. price_min / price_max
type Filter map[string]string

// Clone returns an independent copy
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Equal compares two filters by value
func (f Filter) Equal(o Filter) bool {
	if len(f) != len(o) {
		return false
	}
	for k, v := range f {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// ListPage is what a list view hands to the screen
type ListPage[T any] struct {
	Items       []T        `json:"items"`
	Total       int        `json:"total"`
	HasNextPage bool       `json:"hasNextPage"`
	Query       TableQuery `json:"query"`
	Filter      Filter     `json:"filter"`
	Selection   []T        `json:"selection"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
}
