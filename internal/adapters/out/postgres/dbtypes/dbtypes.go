// Package dbtypes holds the column groups shared by the order and delivery record tables.
// They are embedded into the table DTOs with a prefix.
package dbtypes

import (
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
)

type ContactDTO struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

func FromContact(c kernel.Contact) ContactDTO {
	return ContactDTO{Name: c.Name(), Email: c.Email(), Phone: c.Phone(), Company: c.Company()}
}

func (dto ContactDTO) ToDomain() (kernel.Contact, error) {
	return kernel.NewContact(dto.Name, dto.Email, dto.Phone, dto.Company)
}

type ContainerDTO struct {
	TypeName  string
	CatalogID string
	Quantity  int
}

func FromContainer(c order.Container) ContainerDTO {
	return ContainerDTO{TypeName: c.TypeName(), CatalogID: c.CatalogID(), Quantity: c.Quantity()}
}

func (dto ContainerDTO) ToDomain() (order.Container, error) {
	return order.NewContainer(dto.TypeName, dto.CatalogID, dto.Quantity)
}

// AddressDTO stores the zero address as empty columns.
type AddressDTO struct {
	Line1    string
	Line2    string
	City     string
	Postcode string
}

func FromAddress(a kernel.Address) AddressDTO {
	return AddressDTO{Line1: a.Line1(), Line2: a.Line2(), City: a.City(), Postcode: a.Postcode()}
}

func (dto AddressDTO) ToDomain() (kernel.Address, error) {
	if dto == (AddressDTO{}) {
		return kernel.Address{}, nil
	}
	return kernel.NewAddress(dto.Line1, dto.Line2, dto.City, dto.Postcode)
}
