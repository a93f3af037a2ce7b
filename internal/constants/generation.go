package constants

// Generation defaults sent with every image request.
const (
	DefaultTemperature    = 1.0
	DefaultTopP           = 0.95
	MaxOutputTokens       = 32768
	DefaultImageSize      = "1K"
	AspectRatioAuto       = "auto"
	SafetyThresholdOff    = "OFF"
	ResponseModalityImage = "IMAGE"
	ResultImageFilename   = "result.png"
)
