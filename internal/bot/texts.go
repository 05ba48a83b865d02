package bot

// Keyboard button labels. Buttons are plain reply-keyboard text, so they
// arrive as ordinary messages and funnel into the same handlers as the
// slash commands.
const (
	btnLink    = "🔗 Link Account"
	btnCurrent = "⏱️ Current Activity"
	btnHelp    = "❓ Help"
	btnStart   = "🏠 Start"
	btnUnlink  = "🔓 Unlink Account"
)

const (
	textWelcome = "Welcome to PlanTracker Bot!\n\n" +
		"Available commands:\n" +
		"/link - Link your account\n" +
		"/unlink - Unlink your account\n" +
		"/current - Show current activity\n" +
		"/help - Show help message"

	textHelp = "PlanTracker Bot Commands:\n\n" +
		"/start - Start the bot\n" +
		"/help - Show this help message\n" +
		"/link - Link your account\n" +
		"/unlink - Unlink your account\n" +
		"/current - Show current activity\n\n" +
		"You can use the buttons below to send these commands."

	textAskEmail        = "Please enter your PlanTracker account email:"
	textUserNotFound    = "User not found. Please check your email and try again:"
	textAlreadyLinked   = "This account is already linked to a Telegram account.\nPlease unlink it first through the web interface or use the '🔓 Unlink Account' button."
	textAskPassword     = "Email verified! Please enter your password:"
	textInvalidPassword = "Invalid password. Please try again:"
	textLinked          = "Account successfully linked! You will now receive notifications about your activities."
	textLinkCancelled   = "Linking cancelled."

	textNotLinked      = "Your account is not linked to Telegram."
	textUnlinked       = "Your account has been unlinked from Telegram. You will no longer receive notifications."
	textLinkFirst      = "Please link your account first using the '🔗 Link Account' button."
	textNoRunningTimer = "No active timer running.\nUse the web interface to start tracking an activity."

	textInternalError = "An error occurred. Please try again later."
)
