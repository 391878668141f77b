package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/slug"
)

// DefaultCustomerRole is applied when the form leaves role empty
const DefaultCustomerRole = "customer"

// fieldMessages maps "<json field>.<tag>" to the message shown under the input
var fieldMessages = map[string]string{
	"name.required":        "Nome obrigatório",
	"email.required":       "Email obrigatório",
	"email.email":          "Email inválido",
	"password.required":    "Senha obrigatória",
	"role.oneof":           "Perfil inválido",
	"img.required":         "URL do avatar inválida",
	"img.url":              "URL do avatar inválida",
	"title.required":       "Título do produto obrigatório!",
	"price.required":       "Preço obrigatório!",
	"description.required": "Descrição do produto obrigatória!",
	"categoryId.required":  "Categoria obrigatória!",
	"images.min":           "Pelo menos 1 imagem é obrigatória!",
	"images.required":      "Pelo menos 1 imagem é obrigatória!",
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateForm runs the struct rules and returns a *domain.ValidationError with one message per field
func validateForm(values any) error {
	err := formValidator.Struct(values)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		// images[0] reports against images
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := fields[field]; seen {
			continue
		}
		message, ok := fieldMessages[field+"."+fe.Tag()]
		if !ok {
			message = fmt.Sprintf("%s inválido", field)
		}
		fields[field] = message
	}
	return &domain.ValidationError{Fields: fields}
}

// CustomerFormImpl implements domain.CustomerForm
type CustomerFormImpl struct {
	actions domain.CustomerActions
}

// NewCustomerForm creates the customer form
func NewCustomerForm(actions domain.CustomerActions) *CustomerFormImpl {
	return &CustomerFormImpl{actions: actions}
}

// Submit implements domain.CustomerForm.
// A nil handler creates the customer; invalid values never reach the remote API.
func (f *CustomerFormImpl) Submit(ctx context.Context, values domain.CustomerFormValues, handler domain.CustomerSubmitHandler) error {
	values.Name = strings.TrimSpace(values.Name)
	values.Email = strings.TrimSpace(values.Email)
	values.Img = strings.TrimSpace(values.Img)
	if values.Role == "" {
		values.Role = DefaultCustomerRole
	}

	if err := validateForm(values); err != nil {
		return err
	}

	if handler != nil {
		return handler(ctx, values)
	}
	return f.actions.Create(ctx, CustomerPayloadFrom(values))
}

// CustomerPayloadFrom maps validated form values to the remote body
func CustomerPayloadFrom(values domain.CustomerFormValues) domain.CustomerPayload {
	return domain.CustomerPayload{
		Name:     values.Name,
		Email:    values.Email,
		Password: values.Password,
		Role:     values.Role,
		Avatar:   values.Img,
	}
}

// ProductFormImpl implements domain.ProductForm
type ProductFormImpl struct {
	actions domain.ProductActions
}

// NewProductForm creates the product form
func NewProductForm(actions domain.ProductActions) *ProductFormImpl {
	return &ProductFormImpl{actions: actions}
}

// Submit implements domain.ProductForm. A new product gets a unique slug; an edit keeps
// the existing slug or falls back to the title's deterministic slug.
func (f *ProductFormImpl) Submit(ctx context.Context, values domain.ProductFormValues, newProduct bool, existing *domain.Product) (*domain.Product, error) {
	values.Title = strings.TrimSpace(values.Title)
	values.Description = strings.TrimSpace(values.Description)

	if err := validateForm(values); err != nil {
		return nil, err
	}
	if !newProduct && existing == nil {
		return nil, fmt.Errorf("edit product: %w", domain.ErrNotFound)
	}

	payload := domain.ProductPayload{
		Title:       values.Title,
		Price:       *values.Price,
		Description: values.Description,
		CategoryID:  *values.CategoryID,
		Images:      values.Images,
	}

	if newProduct {
		payload.Slug = slug.Generate(values.Title, true)
		return f.actions.Create(ctx, payload)
	}

	payload.Slug = existing.Slug
	if payload.Slug == "" {
		payload.Slug = slug.Generate(values.Title, false)
	}
	return f.actions.Update(ctx, existing.ID, payload)
}

var (
	_ domain.CustomerForm = (*CustomerFormImpl)(nil)
	_ domain.ProductForm  = (*ProductFormImpl)(nil)
)
