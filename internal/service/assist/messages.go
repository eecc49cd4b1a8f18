package assist

// User-facing notices.
const (
	msgNotReviewing   = "Please use this feature while reviewing a card."
	msgSettingsFailed = "Failed to read the assistant settings: %v"
	msgNoteNotFound   = "The card under review could not be loaded: %v"
	msgMissingField   = "Field '%s' was not found on this note, please check the settings."
	msgEmptyQuestion  = "Field '%s' is empty."
	msgNoAPIKey       = "Please set an API key in the assistant settings first."
	msgBusy           = "An answer for this card is already being generated."
	msgAsking         = "Asking the AI, please wait..."
	msgSaveFailed     = "Failed to save the AI answer: %v"
	msgDone           = "AI answer generated and updated"
	msgUnexpected     = "Error while generating the AI answer: %v"
)
