package device

import (
	"fmt"
	"os"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"gopkg.in/yaml.v3"
)

// profileFile は端末プロファイルYAMLの構造。
//
//	device:
//	  model: Sunmi L2K
//	  os_version: Android 11 (RKQ1.200826.002)
//	  ...
type profileFile struct {
	Device model.DeviceIdentity `yaml:"device"`
}

// LoadProfile はYAMLファイルから固定の端末情報を読み込む。
func LoadProfile(path string) (*model.DeviceIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read device profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile はYAMLバイト列から端末情報を読み込む。
func ParseProfile(data []byte) (*model.DeviceIdentity, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse device profile: %w", err)
	}
	if err := pf.Device.Validate(); err != nil {
		return nil, err
	}
	if !ValidIMEI(pf.Device.IMEI) {
		return nil, fmt.Errorf("device profile: invalid imei %q", pf.Device.IMEI)
	}
	return &pf.Device, nil
}
