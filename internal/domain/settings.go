package domain

// AdminSettingsName is the configuration object owned by the review form.
const AdminSettingsName = "message_digest_admin.adminsettings"

// Keys of AdminSettingsName
const (
	SettingWelcomeMessage = "welcome_message"
)
