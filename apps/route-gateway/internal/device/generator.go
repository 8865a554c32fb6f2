// Package device はキャリアに提示する合成端末情報を管理する。
package device

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/google/uuid"
)

// catalogEntry は合成元となる業務端末の型番情報。
type catalogEntry struct {
	model        string
	manufacturer string
	osVersion    string
	tac          string // IMEI先頭8桁（型式割当コード）
	serialPrefix string
}

var catalog = []catalogEntry{
	{"Sunmi L2K", "SUNMI", "Android 11 (RKQ1.200826.002)", "86753104", "L2K"},
	{"Zebra TC26", "Zebra Technologies", "Android 10 (QKQ1.200830.002)", "35384711", "TC26"},
	{"Galaxy XCover5", "samsung", "Android 13 (TP1A.220624.014)", "35614128", "R58R"},
	{"Honeywell CT40", "Honeywell", "Android 11 (RKQ1.210614.002)", "35208210", "CT40"},
}

const serialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"

// Generator は合成端末情報を生成する。並行呼び出しに対応する。
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator は新しいGeneratorを生成する。
// rndがnilの場合はランダムシードを使用する。
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rnd: rnd}
}

// Generate は新しい端末情報を生成する。
func (g *Generator) Generate() model.DeviceIdentity {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry := catalog[g.rnd.IntN(len(catalog))]
	return model.DeviceIdentity{
		Model:          entry.model,
		Manufacturer:   entry.manufacturer,
		OSVersion:      entry.osVersion,
		InstallationID: uuid.NewString(),
		IMEI:           g.imei(entry.tac),
		SerialNumber:   entry.serialPrefix + g.serial(8),
	}
}

// imei はTAC + 6桁のシリアル + Luhnチェックディジットを生成する。
func (g *Generator) imei(tac string) string {
	var b strings.Builder
	b.WriteString(tac)
	for i := 0; i < 6; i++ {
		b.WriteByte(byte('0' + g.rnd.IntN(10)))
	}
	body := b.String()
	return body + string(rune('0'+LuhnCheckDigit(body)))
}

func (g *Generator) serial(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = serialAlphabet[g.rnd.IntN(len(serialAlphabet))]
	}
	return string(buf)
}

// LuhnCheckDigit は数字列に対するLuhnチェックディジットを返す。
func LuhnCheckDigit(digits string) int {
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// ValidIMEI はIMEIが15桁かつLuhnチェックを満たすかを返す。
func ValidIMEI(imei string) bool {
	if len(imei) != 15 {
		return false
	}
	for _, c := range imei {
		if c < '0' || c > '9' {
			return false
		}
	}
	return LuhnCheckDigit(imei[:14]) == int(imei[14]-'0')
}
