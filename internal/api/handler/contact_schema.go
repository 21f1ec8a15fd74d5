package handler

// contactRequest is the body accepted by create and update. All four fields
// are mandatory; birthday stays a string here and is parsed by the domain
// (the permissive multi-format parser, not a struct tag).
type contactRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Birthday string `json:"birthday" form:"birthday" validate:"required"`
	Company  string `json:"company"  form:"company"  validate:"required"`
}

// contactData is the inner "data" object of the response envelope.
type contactData struct {
	ContactID  string `json:"contact_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Birthday   string `json:"birthday"`
	Company    string `json:"company"`
	LastUpdate string `json:"last_update"`
}

type contactLinks struct {
	Self string `json:"self"`
}

// contactEnvelope is the uniform {data, links} wrapping applied to every
// presented contact, single or listed.
type contactEnvelope struct {
	Data  contactData  `json:"data"`
	Links contactLinks `json:"links"`
}

// contactListResponse wraps the item envelopes in a top-level data array.
type contactListResponse struct {
	Data []contactEnvelope `json:"data"`
}
