package services

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/storeadmin/domain"
)

const customersPath = "/users"

// CustomerListService is the customer list view; it implements domain.CustomerListService
type CustomerListService struct {
	*ListView[domain.Customer]
}

// NewCustomerListService creates the customer list view. Only the page size reaches
// the remote query, so every page index shares the /users?limit=N entry.
func NewCustomerListService(api domain.APIClient, cache domain.QueryCache, idleTTL time.Duration) *CustomerListService {
	return &CustomerListService{
		ListView: NewListView("customers", customersPath, api, cache, customerParams, compareCustomers, idleTTL),
	}
}

func customerParams(query domain.TableQuery, _ domain.Filter) url.Values {
	return url.Values{"limit": {strconv.Itoa(query.EffectiveLimit())}}
}

func compareCustomers(a, b domain.Customer, key string) int {
	switch key {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	case "role":
		return strings.Compare(a.Role, b.Role)
	case "creationAt":
		return a.CreationAt.Compare(b.CreationAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

var _ domain.CustomerListService = (*CustomerListService)(nil)
