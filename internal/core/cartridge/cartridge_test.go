package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildINES assembles a minimal iNES image: a 16-byte header (no
// trainer), prgBanks 16KiB PRG banks filled with a recognizable pattern,
// and chrBanks 8KiB CHR banks (none, for CHR-RAM).
func buildINES(flags6, flags7 uint8, prgBanks, chrBanks uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.Write(make([]byte, 8)) // flags8-15

	prg := make([]byte, int(prgBanks)*prgBankSize)
	for i := range prg {
		prg[i] = uint8(i)
	}
	buf.Write(prg)

	if chrBanks > 0 {
		buf.Write(make([]byte, int(chrBanks)*chrBankSize))
	}
	return buf.Bytes()
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildINES(0, 0, 1, 1)
	data[0] = 'X'
	_, err := Load(bytes.NewReader(data))
	require.Error(t, err)
}

func TestLoadRejectsUnimplementedMapper(t *testing.T) {
	// mapper 1 (MMC1): Flags6 high nibble = 1
	data := buildINES(0x10, 0, 1, 1)
	_, err := Load(bytes.NewReader(data))
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, uint8(1), loadErr.MapperID)
}

func TestLoad16KPRGMirrorsAcrossBothBanks(t *testing.T) {
	data := buildINES(0, 0, 1, 1)
	cart, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cart.CPURead(0x8000), cart.CPURead(0xC000))
	assert.Equal(t, uint8(0), cart.CPURead(0x8000))
	assert.Equal(t, uint8(1), cart.CPURead(0x8001))
}

func TestLoadZeroCHRBanksGivesCHRRAM(t *testing.T) {
	data := buildINES(0, 0, 1, 0)
	cart, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, cart.CHRIsRAM)
	cart.PPUWrite(0x0000, 0x42)
	assert.Equal(t, uint8(0x42), cart.PPURead(0x0000))
}

func TestLoadDecodesMirroringFromFlags6(t *testing.T) {
	vertical := buildINES(0x01, 0, 1, 1)
	cart, err := Load(bytes.NewReader(vertical))
	require.NoError(t, err)
	assert.Equal(t, MirrorVertical, cart.Mirroring())

	horizontal := buildINES(0x00, 0, 1, 1)
	cart2, err := Load(bytes.NewReader(horizontal))
	require.NoError(t, err)
	assert.Equal(t, MirrorHorizontal, cart2.Mirroring())
}

func TestLoadRejectsTruncatedPRG(t *testing.T) {
	data := buildINES(0, 0, 2, 1)
	truncated := data[:len(data)-prgBankSize-chrBankSize+10]
	_, err := Load(bytes.NewReader(truncated))
	require.Error(t, err)
}
