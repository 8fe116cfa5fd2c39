package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// Urgency / severity vocabulary shared by documents and extracted contexts.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

const (
	DefaultCategory = "general"
	DefaultUrgency  = UrgencyMedium
)

// Tags that mark a document as safety-relevant for the urgency boost.
var SafetyTags = []string{"safety", "urgent", "critical", "warning"}

// Supported image media types for analysis and registration.
var SupportedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}
