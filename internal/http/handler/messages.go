package handler

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgEmailPasswordRequired   = "Email and password are required"
	msgInvalidCredentials      = "Invalid credentials"
	msgGenerateTokenFail       = "Failed to generate token"
	msgNoTokenProvided         = "No token provided"
	msgInvalidToken            = "Invalid token"
	msgNoFileProvided          = "No file provided"
	msgOpenFileFail            = "Failed to read uploaded file"
)
