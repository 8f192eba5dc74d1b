package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

type texSpec struct {
	container    string
	format       uint32
	mipW, mipH   uint32
	imgW, imgH   uint32
	data         []byte
	compressed   bool
	uncompressed uint32
}

func writeMagic(buf *bytes.Buffer, magic string) {
	buf.WriteString(magic)
	buf.WriteByte(0)
}

func encodeTex(t *testing.T, s texSpec) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := binary.LittleEndian

	writeMagic(&buf, texMagic)
	writeMagic(&buf, texInfoMagic)
	binary.Write(&buf, le, texHeader{
		Format:        s.format,
		TextureWidth:  s.mipW,
		TextureHeight: s.mipH,
		ImageWidth:    s.imgW,
		ImageHeight:   s.imgH,
	})

	writeMagic(&buf, s.container)
	binary.Write(&buf, le, uint32(1)) // image count
	if s.container == texBlockV3 {
		binary.Write(&buf, le, uint32(0))
	}
	binary.Write(&buf, le, uint32(1)) // mip count
	binary.Write(&buf, le, s.mipW)
	binary.Write(&buf, le, s.mipH)
	if s.container != texBlockV1 {
		flag := uint32(0)
		if s.compressed {
			flag = 1
		}
		binary.Write(&buf, le, flag)
		binary.Write(&buf, le, s.uncompressed)
	}
	binary.Write(&buf, le, uint32(len(s.data)))
	buf.Write(s.data)
	return buf.Bytes()
}

func solidRGBA(w, h int, r, g, b, a byte) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

func TestDecodeTex_RGBA(t *testing.T) {
	data := encodeTex(t, texSpec{
		container: "TEXB0002",
		format:    FormatRGBA8888,
		mipW:      8,
		mipH:      8,
		imgW:      6,
		imgH:      5,
		data:      solidRGBA(8, 8, 10, 20, 30, 200),
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex() error: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 6x5", b)
	}
	r, g, b, a := img.At(2, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 200 {
		t.Errorf("pixel = (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestDecodeTex_LZ4(t *testing.T) {
	raw := solidRGBA(16, 16, 255, 255, 255, 128)
	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil || n == 0 {
		t.Fatalf("CompressBlock() = %d, %v", n, err)
	}

	data := encodeTex(t, texSpec{
		container:    texBlockV3,
		format:       FormatRGBA8888,
		mipW:         16,
		mipH:         16,
		imgW:         16,
		imgH:         16,
		data:         compressed[:n],
		compressed:   true,
		uncompressed: uint32(len(raw)),
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex() error: %v", err)
	}
	if _, _, _, a := img.At(15, 15).RGBA(); a>>8 != 128 {
		t.Errorf("alpha = %d, want 128", a>>8)
	}
}

func TestDecodeTex_R8Mask(t *testing.T) {
	mask := []byte{0, 64, 128, 255}
	data := encodeTex(t, texSpec{
		container: texBlockV1,
		format:    FormatR8,
		mipW:      2,
		mipH:      2,
		imgW:      2,
		imgH:      2,
		data:      mask,
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex() error: %v", err)
	}
	rgba := img.(*image.RGBA)
	for i, want := range mask {
		if got := rgba.Pix[i*4+3]; got != want {
			t.Errorf("pixel %d alpha = %d, want %d", i, got, want)
		}
		if rgba.Pix[i*4] != 255 {
			t.Errorf("pixel %d red = %d, want 255", i, rgba.Pix[i*4])
		}
	}
}

func TestDecodeTex_DXT1(t *testing.T) {
	// One 4x4 block: color0 white, color1 black, every index 0.
	block := []byte{0xFF, 0xFF, 0x00, 0x00, 0, 0, 0, 0}
	data := encodeTex(t, texSpec{
		container: "TEXB0002",
		format:    FormatDXT1,
		mipW:      4,
		mipH:      4,
		imgW:      4,
		imgH:      4,
		data:      block,
	})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex() error: %v", err)
	}
	r, _, _, a := img.At(1, 1).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel = r %d a %d, want white", r>>8, a>>8)
	}
}

func TestDecodeTex_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("TEXV0001\x00"), make([]byte, 64)...)},
		{"truncated", encodeTex(t, texSpec{container: "TEXB0002", mipW: 4, mipH: 4, data: make([]byte, 64)})[:60]},
		{"unsupported", encodeTex(t, texSpec{container: "TEXB0002", format: FormatR8, mipW: 4, mipH: 4, data: make([]byte, 3)})},
		{"zero width", encodeTex(t, texSpec{container: "TEXB0002", mipW: 0, mipH: 4, data: make([]byte, 16)})},
		{"huge DXT1", encodeTex(t, texSpec{container: "TEXB0002", format: FormatDXT1, mipW: 0xFFFFFFFF, mipH: 0xFFFFFFFF, data: make([]byte, 8)})},
		{"huge RGBA without data", encodeTex(t, texSpec{container: "TEXB0002", format: FormatRGBA8888, mipW: 1 << 30, mipH: 1})},
		{"short DXT5", encodeTex(t, texSpec{container: "TEXB0002", format: FormatDXT5, mipW: 8, mipH: 8, data: make([]byte, 16)})},
		{"short DXT1", encodeTex(t, texSpec{container: "TEXB0002", format: FormatDXT1, mipW: 8, mipH: 8, data: make([]byte, 8)})},
		{"oversized lz4 output", encodeTex(t, texSpec{container: texBlockV3, mipW: 4, mipH: 4, data: make([]byte, 8), compressed: true, uncompressed: 1 << 31})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTex(bytes.NewReader(tt.data)); err == nil {
				t.Error("DecodeTex() returned nil error")
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	prev := TextureOutDir
	TextureOutDir = filepath.Join(dir, "converted")
	t.Cleanup(func() { TextureOutDir = prev })

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	out, err := WritePNG(img, filepath.Join(dir, "Star1.tex"))
	if err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}
	if out != filepath.Join(dir, "converted", "Star1.png") {
		t.Errorf("out = %q", out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if decoded.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", decoded.Bounds().Dx())
	}
}
