package model

// Contact is a contact-form submission. Submissions are immutable once stored.
// IPAddress and UserAgent come from the transport, never from the payload.
type Contact struct {
	Base      `bson:",inline"`
	Name      string `json:"name" bson:"name" mod:"trim" validate:"required,max=100"`
	Email     string `json:"email" bson:"email" mod:"trim,lcase" validate:"required,email"`
	Subject   string `json:"subject,omitempty" bson:"subject,omitempty" mod:"trim" validate:"max=200"`
	Message   string `json:"message" bson:"message" mod:"trim" validate:"required,max=2000"`
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
}

// ContactInput is the only shape accepted from the contact form.
type ContactInput struct {
	Name    string `json:"name" mod:"trim" validate:"required,max=100"`
	Email   string `json:"email" mod:"trim,lcase" validate:"required,email"`
	Subject string `json:"subject" mod:"trim" validate:"max=200"`
	Message string `json:"message" mod:"trim" validate:"required,max=2000"`
}

// ToContact builds the document to persist, stamping the transport metadata.
func (in ContactInput) ToContact(ip, userAgent string) *Contact {
	return &Contact{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		IPAddress: ip,
		UserAgent: userAgent,
	}
}
