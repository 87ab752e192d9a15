// Package person defines the Person entity.
package person

import "github.com/zjrosen/rollcall/internal/domain/registry"

// Kind is the registry kind for people.
const Kind = "person"

// Person is a named individual with the optional age and company columns
// carried by people CSV files. Age is kept as the text it was read as.
type Person struct {
	name    string
	age     string
	company string
}

// New builds a person. It does not register the person anywhere.
func New(name, age, company string) *Person {
	return &Person{name: name, age: age, company: company}
}

// Factory is the registry factory for people.
func Factory(name string) *Person {
	return &Person{name: name}
}

// NewRegistry creates an empty people registry.
func NewRegistry(opts ...registry.Option) *registry.Registry[*Person] {
	return registry.MustNew[*Person](Kind, Factory, opts...)
}

// Name returns the person's name.
func (p *Person) Name() string {
	return p.name
}

// SetName replaces the person's name.
func (p *Person) SetName(name string) {
	p.name = name
}

// Age returns the age as read from input.
func (p *Person) Age() string {
	return p.age
}

// Company returns the company column.
func (p *Person) Company() string {
	return p.company
}

// NormalizedName returns the name with every word capitalized. The person
// is not modified.
func (p *Person) NormalizedName() string {
	return registry.NormalizeName(p.name)
}
