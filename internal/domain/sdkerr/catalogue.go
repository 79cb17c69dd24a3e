package sdkerr

func define(name string, code int, domain Domain, title, userMessage, message string) *Error {
	return &Error{
		Name:         name,
		InternalCode: code,
		ExternalCode: code,
		Title:        title,
		UserMessage:  userMessage,
		Message:      message,
		Domain:       domain,
	}
}

func defineFlash(name string, code int, userMessage, message string) *Error {
	e := define(name, code, DomainStream, streamTitle, userMessage, message)
	e.flash = true
	return e
}

const (
	configTitle       = "Config Error"
	embedTitle        = "Embed Error"
	streamAccessTitle = "Stream Access Error"
	streamDataTitle   = "Stream Data Error"
	streamTitle       = "Stream Error"
	heartbeatTitle    = "Heartbeat Error"
)

// Generic errors.
var (
	Unknown = define("Unknown", 990, DomainGeneric, "Unknown Error",
		"An unknown error has occurred.",
		"An unknown error has occurred in the AV Player SDK.")
	Network = define("Network", 991, DomainGeneric, "Network Error",
		"A network error has occurred. Please check your connection.",
		"A network error occurred while trying to access the AV Player SDK services.")
	Licence = define("Licence", 992, DomainGeneric, "Licence Error",
		"Licence authentication failed. No valid licence was found.",
		"The AV Player SDK could not authenticate due to a missing or invalid licence.")
	Asset = define("Asset", 993, DomainGeneric, "Asset Error",
		"A problem occurred while loading the media asset.",
		"An error occurred while trying to load or access a media asset in the AV Player SDK.")
)

// Heartbeat and Chromecast errors.
var (
	HeartbeatKeyLoad = define("HeartbeatKeyLoad", 500, DomainHeartbeat, heartbeatTitle,
		"The heartbeat key could not be loaded.",
		"Failed to load heartbeat key.")
	HeartbeatKey = define("HeartbeatKey", 501, DomainHeartbeat, heartbeatTitle,
		"An error occurred while processing the heartbeat key.",
		"Heartbeat key responded with an error.")
	Chromecast = define("Chromecast", 502, DomainChromecast, "Chromecast Error",
		"A Chromecast error occurred during playback.",
		"Failed to communicate with Chromecast device.")
)

// Configuration errors.
var (
	ConfigNotLoaded = define("ConfigNotLoaded", 100, DomainConfig, configTitle,
		"The configuration file could not be loaded.",
		"Configuration file loading failed.")
	ConfigExternal = define("ConfigExternal", 101, DomainConfig, configTitle,
		"An error occurred while loading the configuration file.",
		"External configuration error.")
	ConfigSecurityProtocol = define("ConfigSecurityProtocol", 102, DomainConfig, configTitle,
		"A protocol error occurred while loading the configuration.",
		"Security protocol error in configuration.")
	ConfigSecurityCORS = define("ConfigSecurityCORS", 103, DomainConfig, configTitle,
		"A CORS error occurred while loading the configuration.",
		"Security CORS error in configuration.")
	ConfigInvalidDateFormat = define("ConfigInvalidDateFormat", 104, DomainConfig, configTitle,
		"Invalid date format provided in configuration.",
		"Countdown enabled but invalid date format passed via configuration.")
)

// Embed errors.
var (
	EmbedVideoOrPartnerIDMissing = define("EmbedVideoOrPartnerIDMissing", 1, DomainEmbed, embedTitle,
		"Stream ID or Partner ID is missing in the configuration.",
		"Either videoID or partnerID (or both) are missing in the config.")
	EmbedDOMObjectNotAvailable = define("EmbedDOMObjectNotAvailable", 2, DomainEmbed, embedTitle,
		"Player object is not available.",
		"DOM object required for player instance is not available.")
)

// Stream access errors.
var (
	StreamAccessAPINotLoaded = define("StreamAccessAPINotLoaded", 200, DomainStreamAccess, streamAccessTitle,
		"The stream access API could not be loaded.",
		"Failed to load stream access API details.")
	StreamNotAllowedOnMultipleDevices = define("StreamNotAllowedOnMultipleDevices", 201, DomainStreamAccess, streamAccessTitle,
		"You are not allowed to view this stream on multiple devices.",
		"Access denied: multiple device streaming is not permitted.")
	StreamNotAllowedOnMobile = define("StreamNotAllowedOnMobile", 202, DomainStreamAccess, streamAccessTitle,
		"You are not allowed to view this stream on a mobile phone.",
		"Access denied: mobile streaming is not permitted.")
	StreamAccess = define("StreamAccess", 203, DomainStreamAccess, streamAccessTitle,
		"A general stream access error occurred.",
		"General error while accessing the stream.")
	StreamAccessResourceNotFound = define("StreamAccessResourceNotFound", 204, DomainStreamAccess, streamAccessTitle,
		"The requested stream resource could not be found.",
		"Resource not found (LCO API 100).")
	StreamAccessMethodNotAllowed = define("StreamAccessMethodNotAllowed", 205, DomainStreamAccess, streamAccessTitle,
		"The requested method is not allowed for this stream.",
		"Method not allowed (LCO API 101).")
	StreamAccessApplication = define("StreamAccessApplication", 206, DomainStreamAccess, streamAccessTitle,
		"An internal server error occurred while accessing the stream.",
		"Internal server error (LCO API 102).")
	StreamAccessBadRequest = define("StreamAccessBadRequest", 207, DomainStreamAccess, streamAccessTitle,
		"Bad request: missing end-user IP information.",
		"Bad request (LCO API 104): end-user IP missing.")
	StreamAccessStreamNotAvailable = define("StreamAccessStreamNotAvailable", 208, DomainStreamAccess, streamAccessTitle,
		"The stream is not available for the requested match.",
		"Stream not available for match (LCO API 104).")
	StreamAccessGeoBlock = define("StreamAccessGeoBlock", 209, DomainStreamAccess, streamAccessTitle,
		"Your geo location is not authorized for the requested match.",
		"Geo-blocked: unauthorized location (LCO API 105).")
	StreamAccessStreamNotFound = define("StreamAccessStreamNotFound", 210, DomainStreamAccess, streamAccessTitle,
		"The stream is not available for the requested content.",
		"Stream not found for content (LCO API 106).")
)

// Stream data errors. Code 305 is unassigned.
var (
	StreamDataNotLoaded = define("StreamDataNotLoaded", 300, DomainStreamData, streamDataTitle,
		"The stream data could not be loaded.",
		"Failed to load stream data details.")
	StreamDataGeoBlock = define("StreamDataGeoBlock", 301, DomainStreamData, streamDataTitle,
		"Access to the stream is blocked due to geographic restrictions.",
		"Geoblock applied: ESI -1.")
	StreamDataTokenNotValid = define("StreamDataTokenNotValid", 302, DomainStreamData, streamDataTitle,
		"The provided token is not valid for stream access.",
		"Invalid token: ESI -2.")
	StreamDataStreamNotAvailable = define("StreamDataStreamNotAvailable", 303, DomainStreamData, streamDataTitle,
		"The requested stream is not available.",
		"Stream not available: ESI -3.")
	StreamDataTokenExpired = define("StreamDataTokenExpired", 304, DomainStreamData, streamDataTitle,
		"The token for stream access has expired.",
		"Token expired: ESI -4.")
	StreamDataStreamRemoved = define("StreamDataStreamRemoved", 306, DomainStreamData, streamDataTitle,
		"The stream has been removed and is no longer available.",
		"Stream removed: ESI -6.")
	StreamDataGeneric = define("StreamDataGeneric", 307, DomainStreamData, streamDataTitle,
		"A generic error occurred while accessing stream data.",
		"Generic stream data error.")
)

// Stream errors.
var (
	LiveStreamsLoad = define("LiveStreamsLoad", 400, DomainStream, streamTitle,
		"Unable to load additional livestream feeds.",
		"Multiview interface could not be loaded.")
	VideoFormat = define("VideoFormat", 600, DomainStream, streamTitle,
		"No valid video source found for playback.",
		"No valid video src or mimeType format detected.")
	VideoURL = define("VideoURL", 601, DomainStream, streamTitle,
		"No valid video URL provided.",
		"Interface did not send a valid videoURL.")
	VideoPlayback = define("VideoPlayback", 602, DomainStream, streamTitle,
		"No playable stream sources available for playback.",
		"All available stream sources failed to play.")
	VideoNetwork = define("VideoNetwork", 610, DomainStream, streamTitle,
		"Non-fatal network error occurred during playback.",
		"hls.js non-fatal error (Youbora event only).")
	VideoStreamPlayback = define("VideoStreamPlayback", 700, DomainStream, streamTitle,
		"Playback error occurred in video stream.",
		"Video stream playback failed.")
	DRMDashLicenseServer = define("DRMDashLicenseServer", 701, DomainStream, streamTitle,
		"DRM DASH license server is not available.",
		"Failed to communicate with DASH license server.")
	DRMDashDecryption = define("DRMDashDecryption", 702, DomainStream, streamTitle,
		"DRM DASH stream cannot be decrypted.",
		"Decryption of DASH stream failed.")
	DRMFairplayCertificate = define("DRMFairplayCertificate", 703, DomainStream, streamTitle,
		"Failed to retrieve the Fairplay server certificate.",
		"DRM Fairplay certificate retrieval error.")
	StreamEnded = define("StreamEnded", 800, DomainStream, streamTitle,
		"This stream has ended.",
		"Stream ended.")
	BrowserNotSupported = define("BrowserNotSupported", 801, DomainStream, streamTitle,
		"Your browser is not supported for playback.",
		"Browser not supported.")
	FlashSecurity = define("FlashSecurity", 900, DomainStream, streamTitle,
		"crossdomain.xml file not found on the server domain.",
		"Flash security error.")
)

// Flash stream errors.
var (
	FlashHTTP = defineFlash("FlashHTTP", 901,
		"HTTP error occurred during Flash stream playback.",
		"Flash HTTP error.")
	FlashMediaElement = defineFlash("FlashMediaElement", 902,
		"Cannot create media element with the provided URL and mimetype.",
		"Flash media element creation error.")
	FlashSmilFile = defineFlash("FlashSmilFile", 903,
		"SMIL file is empty or not in the correct format.",
		"SMIL file parsing error.")
	FlashSwfFileMissing = defineFlash("FlashSwfFileMissing", 904,
		"SWF file is missing. Player not loaded.",
		"SWF file missing error.")
	FlashPluginNotActive = defineFlash("FlashPluginNotActive", 905,
		"Flash plugin is not active. Please activate Flash in your browser.",
		"Flash plugin not active error.")
	FlashSeek = defineFlash("FlashSeek", 906,
		"Seek operation is out of bounds.",
		"Flash seek error.")
)

var catalogue = []*Error{
	Unknown, Network, Licence, Asset,
	HeartbeatKeyLoad, HeartbeatKey,
	Chromecast,
	ConfigNotLoaded, ConfigExternal, ConfigSecurityProtocol, ConfigSecurityCORS, ConfigInvalidDateFormat,
	EmbedVideoOrPartnerIDMissing, EmbedDOMObjectNotAvailable,
	StreamDataNotLoaded, StreamDataGeoBlock, StreamDataTokenNotValid, StreamDataStreamNotAvailable,
	StreamDataTokenExpired, StreamDataStreamRemoved, StreamDataGeneric,
	StreamAccessAPINotLoaded, StreamNotAllowedOnMultipleDevices, StreamNotAllowedOnMobile, StreamAccess,
	StreamAccessResourceNotFound, StreamAccessMethodNotAllowed, StreamAccessApplication, StreamAccessBadRequest,
	StreamAccessStreamNotAvailable, StreamAccessGeoBlock, StreamAccessStreamNotFound,
	LiveStreamsLoad, VideoFormat, VideoURL, VideoPlayback, VideoNetwork, VideoStreamPlayback,
	DRMDashLicenseServer, DRMDashDecryption, DRMFairplayCertificate, StreamEnded, BrowserNotSupported,
	FlashSecurity, FlashHTTP, FlashMediaElement, FlashSmilFile, FlashSwfFileMissing, FlashPluginNotActive, FlashSeek,
}
