package headers

// キャリア固有ヘッダー名
const (
	HeaderActivityID    = "ActivityId"
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderAppName       = "AppName"
	HeaderAppIdentifier = "AppIdentifier"
	HeaderAppVersion    = "VersionApplication"
	HeaderVersionCode   = "VersionCode"
	HeaderDevice        = "Device"
	HeaderOSVersion     = "VersionOS"
	HeaderUserName      = "UserName"
	HeaderSociete       = "Societe"
	HeaderDomaine       = "Domaine"
	HeaderSession       = "SsoHopps"
	HeaderIMEI          = "Imei"
	HeaderSerial        = "SerialNumber"
	HeaderInstallation  = "InstallationId"
	HeaderRequestedWith = "X-Requested-With"
)

const (
	contentTypeJSON = "application/json; charset=UTF-8"
	domaineValue    = "Membership"
	acceptLanguage  = "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7"
	acceptBrowser   = "application/json, text/plain, */*"
)
