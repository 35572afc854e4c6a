package mailer

import "errors"

var (
	// ErrNoRecipient indicates the staff member has no e-mail address.
	ErrNoRecipient = errors.New("mailer: recipient has no email address")

	// ErrConfigMissing indicates the selected transport lacks credentials.
	ErrConfigMissing = errors.New("mailer: transport is not configured")

	// ErrAuthFailed indicates the transport rejected our credentials.
	ErrAuthFailed = errors.New("mailer: authentication failed")

	// ErrSendFailed indicates delivery failed.
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("mailer: failed to render template")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("mailer: template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("mailer: layout not found")

	// ErrInvalidFrontmatter indicates invalid YAML front matter.
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")
)
