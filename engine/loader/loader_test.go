package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer packs three positions followed by three uint16 indices (42 bytes).
func triangleBuffer(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, positions))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []uint16{0, 2, 1}))
	return buf.Bytes()
}

func triangleDocument(uri string, byteLength int, indexed bool) string {
	indices := ""
	if indexed {
		indices = `, "indices": 1`
	}
	bufferURI := ""
	if uri != "" {
		bufferURI = fmt.Sprintf(`"uri": %q, `, uri)
	}
	return fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "tri-scene", "nodes": [0]}],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}%s}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "buffers": [{%s"byteLength": %d}]
}`, indices, bufferURI, byteLength)
}

func dataURI(data []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
}

// glb wraps a JSON document and binary payload in a GLB container.
func glb(t *testing.T, jsonDoc string, bin []byte) []byte {
	t.Helper()
	jsonBytes := []byte(jsonDoc)
	for len(jsonBytes)%4 != 0 {
		jsonBytes = append(jsonBytes, ' ')
	}
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}

	var out bytes.Buffer
	total := uint32(12 + 8 + len(jsonBytes) + 8 + len(bin))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: total}))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonBytes)), ChunkType: gltfGLBChunkJSON}))
	out.Write(jsonBytes)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
	out.Write(bin)
	return out.Bytes()
}

func assertTriangle(t *testing.T, m model.Model) {
	t.Helper()
	require.Equal(t, 3, m.VertexCount())
	require.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, common.Triangle3{
		V0: common.Vec3{X: 0, Y: 0, Z: 0},
		V1: common.Vec3{X: 0, Y: 1, Z: 0},
		V2: common.Vec3{X: 1, Y: 0, Z: 0},
	}, m.Triangle(0))
}

func TestLoadReaderEmbeddedGLTF(t *testing.T) {
	buf := triangleBuffer(t)
	doc := triangleDocument(dataURI(buf), len(buf), true)

	l := NewLoader(BackendTypeGLTF)
	m, err := l.LoadReader("embedded", strings.NewReader(doc), false)
	require.NoError(t, err)
	assertTriangle(t, m)
	assert.Equal(t, "tri-scene", m.Name())

	again, err := l.LoadReader("embedded", strings.NewReader("not json"), false)
	require.NoError(t, err, "cached models skip parsing")
	assert.Same(t, m, again)
}

func TestLoadReaderGLB(t *testing.T) {
	buf := triangleBuffer(t)
	data := glb(t, triangleDocument("", len(buf), true), buf)

	m, err := NewLoader(BackendTypeGLTF).LoadReader("binary", bytes.NewReader(data), true)
	require.NoError(t, err)
	assertTriangle(t, m)
}

func TestLoadFileWithExternalBuffer(t *testing.T) {
	dir := t.TempDir()
	buf := triangleBuffer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.bin"), buf, 0o644))
	path := filepath.Join(dir, "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleDocument("tri.bin", len(buf), true)), 0o644))

	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(path)
	require.NoError(t, err)
	assertTriangle(t, m)
	assert.Same(t, m, l.Get(path))
	assert.Len(t, l.Models(), 1)
}

func TestNonIndexedPrimitiveGetsSequentialIndices(t *testing.T) {
	buf := triangleBuffer(t)
	doc := triangleDocument(dataURI(buf), len(buf), false)

	m, err := NewLoader(BackendTypeGLTF).LoadReader("plain", strings.NewReader(doc), false)
	require.NoError(t, err)
	assert.Equal(t, [][3]uint32{{0, 1, 2}}, m.Triangles())
}

func TestResolveBuiltinsAndFiles(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	cube, err := l.Resolve("cube")
	require.NoError(t, err)
	assert.Equal(t, 12, cube.TriangleCount())
	assert.Same(t, cube, l.Get("cube"))

	_, err = l.Resolve("mesh.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewLoader(BackendTypeGLTF, WithBuiltins(false)).Resolve("cube")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	custom := model.Quad()
	pre := NewLoader(BackendTypeGLTF, WithModel("floor", custom))
	got, err := pre.Resolve("floor")
	require.NoError(t, err)
	assert.Same(t, custom, got)
}

func TestLoadErrors(t *testing.T) {
	buf := triangleBuffer(t)
	l := NewLoader(BackendTypeGLTF)

	_, err := l.LoadReader("v1", strings.NewReader(`{"asset": {"version": "1.0"}}`), false)
	assert.ErrorIs(t, err, errInvalidGLTFVersion)

	bad := glb(t, triangleDocument("", len(buf), true), buf)
	binary.LittleEndian.PutUint32(bad[0:4], 0xdeadbeef)
	_, err = l.LoadReader("magic", bytes.NewReader(bad), true)
	assert.ErrorIs(t, err, errInvalidGLBMagic)

	short := triangleBuffer(t)[:30]
	_, err = l.LoadReader("short", strings.NewReader(triangleDocument(dataURI(short), len(buf), true)), false)
	assert.ErrorIs(t, err, errBufferSizeMismatch)

	overrun := strings.Replace(triangleDocument(dataURI(buf), len(buf), true), `"count": 3, "type": "VEC3"`, `"count": 4, "type": "VEC3"`, 1)
	_, err = l.LoadReader("overrun", strings.NewReader(overrun), false)
	assert.ErrorIs(t, err, errAccessorRange)

	lines := strings.Replace(triangleDocument(dataURI(buf), len(buf), true), `"indices": 1`, `"indices": 1, "mode": 1`, 1)
	_, err = l.LoadReader("lines", strings.NewReader(lines), false)
	assert.ErrorContains(t, err, "unsupported primitive mode")

	badIndex := strings.Replace(triangleDocument(dataURI(buf), len(buf), true), `"indices": 1`, `"indices": 7`, 1)
	_, err = l.LoadReader("badIndex", strings.NewReader(badIndex), false)
	assert.ErrorContains(t, err, "accessor index 7 out of range")

	assert.Empty(t, l.Get("v1"), "failed loads are not cached")
}
