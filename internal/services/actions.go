package services

import (
	"errors"

	"github.com/you/storeadmin/domain"
)

// Navigation targets after a successful write
const (
	CustomerListRoute = "/pageView/customers/customer-list"
	ProductListRoute  = "/pageView/products/product-list"
)

// Toast-safe messages used when the remote API gives none
const (
	createCustomerFailedMessage = "Erro ao criar usuário"
	updateCustomerFailedMessage = "Erro ao editar usuário"
	deleteCustomerFailedMessage = "Erro ao deletar usuário"
	saveProductFailedMessage    = "Erro ao salvar produto"
	deleteProductFailedMessage  = "Erro ao deletar produto"
	duplicateEmailMessage       = "Já existe um usuário com este email"
)

// actionError turns a remote failure into an ActionError carrying the best message
func actionError(err error, fallback string, checkUnique bool) error {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if checkUnique && apiErr.UniqueViolation() {
			return &domain.ActionError{Message: duplicateEmailMessage, Err: err}
		}
		if apiErr.Message != "" {
			return &domain.ActionError{Message: apiErr.Message, Err: err}
		}
	}
	return &domain.ActionError{Message: fallback, Err: err}
}
