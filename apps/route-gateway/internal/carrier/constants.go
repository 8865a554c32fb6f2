package carrier

// キャリアAPIパス
const (
	PathLogin             = "/api/auth/login/Membership"
	PathRefresh           = "/api/auth/login-token/Membership"
	PathDeviceAudit       = "/api/device/audit"
	PathVersionCheck      = "/api/application/version-check"
	PathLoggingAutomatico = "/api/logging/automatico"
	PathTourneeWeb        = "/WS-TourneeColis/api/getTourneeByMatriculeDistributeurDateDebut_POST"
	PathTourneeMobile     = "/WS-TourneeColis/api/getTourneeMobileByMatriculeDistributeurDateDebut_POST"
)

// エンドポイント名（ログ・エラー用）
const (
	EndpointLogin             = "login"
	EndpointRefresh           = "refresh"
	EndpointDeviceAudit       = "device_audit"
	EndpointVersionCheck      = "version_check"
	EndpointLoggingAutomatico = "logging_automatico"
	EndpointManifest          = "manifest"
)

// DeniedMessage はトークン拒否時にキャリアが返す本文。
const DeniedMessage = "Authorization has been denied for this request."
