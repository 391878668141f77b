package domain

import (
	"context"
	"net/url"
	"time"
)

// TokenStore is the per-tab persisted storage holding access_token and refresh_token
type TokenStore interface {
	Load(ctx context.Context, tabID string) (Tokens, error)
	Save(ctx context.Context, tabID string, tokens Tokens) error
	Clear(ctx context.Context, tabID string) error
}

// APIClient is the single transport to the remote REST API.
// The tab whose token must be attached travels in ctx (see ContextWithTab).
type APIClient interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	Raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// CacheStore keeps raw response bodies keyed by request shape
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Fetcher loads the raw body for a cache key
type Fetcher func(ctx context.Context) ([]byte, error)

// QueryCache is the cache-and-revalidate data layer
type QueryCache interface {
	Fetch(ctx context.Context, key string, fetch Fetcher) ([]byte, error)
	Mutate(ctx context.Context, key string, fetch Fetcher) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Navigator moves the screen to another route
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// TokenClaims is what can be read from a remote access token without its signing key
type TokenClaims struct {
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenInspector decodes remote access tokens
type TokenInspector interface {
	Inspect(token string) (*TokenClaims, error)
}

// AuthService is the auth session controller
type AuthService interface {
	Hydrate(ctx context.Context, tabID, redirectURL string) (bool, error)
	SignIn(ctx context.Context, tabID string, cred SignInCredential, redirectURL string) AuthResult
	SignUp(ctx context.Context, tabID string, cred SignUpCredential, redirectURL string) AuthResult
	SignOut(ctx context.Context, tabID string)
	OAuthSignIn(ctx context.Context, tabID, redirectURL string, callback func(OAuthHandles))
	RefreshSession(ctx context.Context, tabID string) error
	Redirect(ctx context.Context, redirectURL string)
	Authenticated(tabID string) bool
	CurrentUser(tabID string) *User
	Claims(tabID string) (*TokenClaims, error)
}

// CustomerListService exposes the customer list view of a tab
type CustomerListService interface {
	Load(ctx context.Context, tabID string) (*ListPage[Customer], error)
	Mutate(ctx context.Context, tabID string) (*ListPage[Customer], error)
	SetQuery(tabID string, query TableQuery) error
	SetFilter(tabID string, filter Filter) error
	Select(tabID string, id int, checked bool) error
	SelectAll(tabID string, checked bool)
	Snapshot(tabID string) *ListPage[Customer]
}

// ProductListService exposes the product list view of a tab
type ProductListService interface {
	Load(ctx context.Context, tabID string) (*ListPage[Product], error)
	Mutate(ctx context.Context, tabID string) (*ListPage[Product], error)
	SetQuery(tabID string, query TableQuery) error
	SetFilter(tabID string, filter Filter) error
	Select(tabID string, id int, checked bool) error
	SelectAll(tabID string, checked bool)
	Snapshot(tabID string) *ListPage[Product]
}

// CategoryService lists product categories
type CategoryService interface {
	List(ctx context.Context, limit int) ([]Category, error)
}

// CustomerActions performs customer writes against the remote API
type CustomerActions interface {
	Create(ctx context.Context, payload CustomerPayload) error
	Update(ctx context.Context, id int, payload CustomerPayload) error
	Delete(ctx context.Context, id int) error
}

// ProductActions performs product reads and writes against the remote API
type ProductActions interface {
	Get(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, payload ProductPayload) (*Product, error)
	Update(ctx context.Context, id int, payload ProductPayload) (*Product, error)
	Delete(ctx context.Context, id int) error
}

// CustomerFormValues is the customer form schema
type CustomerFormValues struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
	Img      string `json:"img" validate:"required,url"`
}

// ProductFormValues is the product form schema
type ProductFormValues struct {
	Title       string   `json:"title" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Description string   `json:"description" validate:"required"`
	CategoryID  *int     `json:"categoryId" validate:"required"`
	Images      []string `json:"images" validate:"min=1,dive,required"`
}

// CustomerSubmitHandler replaces the default create on customer form submit
type CustomerSubmitHandler func(ctx context.Context, values CustomerFormValues) error

// CustomerForm validates and submits customer payloads
type CustomerForm interface {
	Submit(ctx context.Context, values CustomerFormValues, handler CustomerSubmitHandler) error
}

// ProductForm validates and submits product payloads
type ProductForm interface {
	Submit(ctx context.Context, values ProductFormValues, newProduct bool, existing *Product) (*Product, error)
}
