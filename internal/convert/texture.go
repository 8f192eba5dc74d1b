package convert

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"starfield/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// TextureOutDir receives PNG copies of decoded .tex sprites when set.
var TextureOutDir string

// Pixel formats stored in a TEXV0005 header.
const (
	FormatRGBA8888 = 0
	FormatDXT5     = 4
	FormatDXT3     = 6
	FormatDXT1     = 7
	FormatRG88     = 8
	FormatR8       = 9
)

// MaxTextureSize bounds either side of a decoded mip.
const MaxTextureSize = 16384

const (
	texMagic       = "TEXV0005"
	texInfoMagic   = "TEXI0001"
	texBlockV1     = "TEXB0001"
	texBlockV3     = "TEXB0003"
	magicFieldSize = 8
)

type texHeader struct {
	Format        uint32
	Flags         uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Unknown       uint32
}

type mipHeader struct {
	Width            uint32
	Height           uint32
	Compressed       bool
	DecompressedSize uint32
	DataSize         uint32
}

func readMagic(r io.Reader) (string, error) {
	// Each magic is NUL terminated.
	b := make([]byte, magicFieldSize+1)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// DecodeTexToImage decodes the first mip level of a .tex file.
func DecodeTexToImage(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func DecodeTex(r io.Reader) (image.Image, error) {
	magic, err := readMagic(r)
	if err != nil {
		return nil, err
	}
	if magic != texMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}
	if magic, err = readMagic(r); err != nil {
		return nil, err
	} else if magic != texInfoMagic {
		return nil, fmt.Errorf("invalid info magic: %q", magic)
	}

	var header texHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	utils.Debug("    Format: %d, Target Size: %dx%d", header.Format, header.ImageWidth, header.ImageHeight)

	container, err := readMagic(r)
	if err != nil {
		return nil, err
	}
	imageCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if container == texBlockV3 {
		if _, err := readUint32(r); err != nil {
			return nil, err
		}
	}
	if imageCount == 0 {
		return nil, fmt.Errorf("no image found in texture")
	}

	mipCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if mipCount == 0 {
		return nil, fmt.Errorf("no mipmaps in texture")
	}

	mip, err := readMipHeader(r, container)
	if err != nil {
		return nil, err
	}
	if err := checkMip(mip); err != nil {
		return nil, err
	}
	data := make([]byte, mip.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read mip data: %w", err)
	}

	if mip.Compressed {
		utils.Debug("    Decompressing LZ4: %d -> %d", mip.DataSize, mip.DecompressedSize)
		decoded := make([]byte, mip.DecompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = decoded[:n]
	}

	pix, err := decodePixels(header.Format, data, mip.Width, mip.Height)
	if err != nil {
		return nil, err
	}
	if len(pix) < int(mip.Width)*int(mip.Height)*4 {
		return nil, fmt.Errorf("decoded %d bytes for %dx%d", len(pix), mip.Width, mip.Height)
	}

	rgba := &image.RGBA{
		Pix:    pix,
		Stride: int(mip.Width) * 4,
		Rect:   image.Rect(0, 0, int(mip.Width), int(mip.Height)),
	}

	w, h := int(header.ImageWidth), int(header.ImageHeight)
	if w <= 0 || w > int(mip.Width) {
		w = int(mip.Width)
	}
	if h <= 0 || h > int(mip.Height) {
		h = int(mip.Height)
	}
	return rgba.SubImage(image.Rect(0, 0, w, h)), nil
}

func readMipHeader(r io.Reader, container string) (mipHeader, error) {
	var m mipHeader
	var err error
	if m.Width, err = readUint32(r); err != nil {
		return m, err
	}
	if m.Height, err = readUint32(r); err != nil {
		return m, err
	}
	if container != texBlockV1 {
		flag, err := readUint32(r)
		if err != nil {
			return m, err
		}
		m.Compressed = flag == 1
		if m.DecompressedSize, err = readUint32(r); err != nil {
			return m, err
		}
	}
	if m.DataSize, err = readUint32(r); err != nil {
		return m, err
	}
	return m, nil
}

// checkMip rejects sizes that cannot belong to a sane sprite before any
// buffer is allocated for them.
func checkMip(m mipHeader) error {
	if m.Width == 0 || m.Height == 0 || m.Width > MaxTextureSize || m.Height > MaxTextureSize {
		return fmt.Errorf("invalid mip size %dx%d", m.Width, m.Height)
	}
	raw := int(m.Width) * int(m.Height) * 4
	if uint64(m.DataSize) > uint64(lz4.CompressBlockBound(raw)) {
		return fmt.Errorf("mip data size %d too large for %dx%d", m.DataSize, m.Width, m.Height)
	}
	if m.Compressed && uint64(m.DecompressedSize) > uint64(raw) {
		return fmt.Errorf("mip decompressed size %d too large for %dx%d", m.DecompressedSize, m.Width, m.Height)
	}
	return nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	pixels := int(w) * int(h)
	blocks := int((w+3)/4) * int((h+3)/4)
	size := len(data)

	switch {
	case format == FormatR8 && size == pixels:
		utils.Debug("    Type: R8")
		return maskToRGBA(data, 1), nil
	case format == FormatRG88 && size == pixels*2:
		utils.Debug("    Type: RG88")
		return maskToRGBA(data, 2), nil
	case size == pixels*4:
		utils.Debug("    Type: RGBA")
		pix := make([]byte, len(data))
		copy(pix, data)
		return pix, nil
	case format == FormatDXT5 || size == blocks*16:
		if size < blocks*16 {
			return nil, fmt.Errorf("DXT5 data is %d bytes, want %d", size, blocks*16)
		}
		utils.Debug("    Type: DXT5")
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == FormatDXT1 || size == blocks*8:
		if size < blocks*8 {
			return nil, fmt.Errorf("DXT1 data is %d bytes, want %d", size, blocks*8)
		}
		utils.Debug("    Type: DXT1")
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	}
	return nil, fmt.Errorf("unsupported format %d with size %d", format, size)
}

// maskToRGBA turns single-channel coverage into white pixels whose alpha is
// the last channel of each source pixel, ready to be tinted.
func maskToRGBA(data []byte, channels int) []byte {
	n := len(data) / channels
	pix := make([]byte, n*4)
	for i := 0; i < n; i++ {
		a := data[i*channels+channels-1]
		pix[i*4+0] = 255
		pix[i*4+1] = 255
		pix[i*4+2] = 255
		pix[i*4+3] = a
	}
	return pix
}

// WritePNG stores img next to texPath, or in TextureOutDir when set.
func WritePNG(img image.Image, texPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath)) + ".png"
	outPath := filepath.Join(filepath.Dir(texPath), base)
	if TextureOutDir != "" {
		if err := os.MkdirAll(TextureOutDir, 0755); err != nil {
			return "", err
		}
		outPath = filepath.Join(TextureOutDir, base)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", err
	}
	return outPath, f.Close()
}

// LoadTextureNative uploads a sprite file to the GPU. It must run on the
// thread that owns the raylib window.
func LoadTextureNative(path string) (*rl.Texture2D, error) {
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		img, err := DecodeTexToImage(path)
		if err != nil {
			return nil, err
		}
		if TextureOutDir != "" {
			if out, err := WritePNG(img, path); err != nil {
				utils.Warn("Failed to cache PNG for %s: %v", path, err)
			} else {
				utils.Debug("Cached %s", out)
			}
		}
		rlImg := rl.NewImageFromImage(img)
		tex := rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		if tex.ID == 0 {
			return nil, fmt.Errorf("upload texture %s failed", path)
		}
		return &tex, nil
	}

	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return nil, fmt.Errorf("load texture %s failed", path)
	}
	return &tex, nil
}
