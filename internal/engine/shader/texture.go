package shader

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureOptions controls sampling of an uploaded texture.
type TextureOptions struct {
	Repeat  bool // wrap instead of clamping
	Mipmaps bool
	Nearest bool // nearest filtering, for lookup tables
}

// UploadTexture creates a 2D texture from img.
func UploadTexture(img *image.RGBA, opts TextureOptions) uint32 {
	return UploadRGBA(img.Pix, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), opts)
}

// UploadRGBA creates a 2D texture from tightly packed RGBA pixels.
func UploadRGBA(pix []byte, width, height int32, opts TextureOptions) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	minFilter, magFilter := int32(gl.LINEAR), int32(gl.LINEAR)
	if opts.Nearest {
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	}
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	return id
}

// White returns a 1x1 opaque white texture, used when a texture is missing.
func White() uint32 {
	return UploadRGBA([]byte{255, 255, 255, 255}, 1, 1, TextureOptions{Nearest: true})
}

// Bind binds texture to a texture unit.
func Bind(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// DeleteTexture frees texture.
func DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}
