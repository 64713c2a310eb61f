package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/san-kum/flysim/internal/assets"
)

// Mesh is a loaded model together with the texture bound to its materials.
type Mesh struct {
	Model    rl.Model
	Texture  rl.Texture2D
	Textured bool
}

// MeshLoader loads raylib models for the asset cache. A missing model file
// becomes a box and a missing texture leaves the diffuse map tinted blue.
type MeshLoader struct {
	log zerolog.Logger

	unloadTexture func(rl.Texture2D)
	unloadModel   func(rl.Model)
}

func NewMeshLoader(log zerolog.Logger) *MeshLoader {
	return &MeshLoader{
		log:           log,
		unloadTexture: rl.UnloadTexture,
		unloadModel:   rl.UnloadModel,
	}
}

func (l *MeshLoader) Load(key assets.Key) (Mesh, error) {
	var mesh Mesh
	if rl.FileExists(key.Model) {
		mesh.Model = rl.LoadModel(key.Model)
	} else {
		mesh.Model = rl.LoadModelFromMesh(rl.GenMeshCube(1, 0.5, 2))
	}

	materials := mesh.Model.GetMaterials()
	if key.Texture != "" && rl.FileExists(key.Texture) {
		mesh.Texture = rl.LoadTexture(key.Texture)
		mesh.Textured = true
		for i := range materials {
			rl.SetMaterialTexture(&materials[i], rl.MapDiffuse, mesh.Texture)
		}
		l.log.Debug().Str("model", key.Model).Str("texture", key.Texture).Msg("loaded textured model")
		return mesh, nil
	}

	for i := range materials {
		materials[i].GetMap(rl.MapDiffuse).Color = rl.Blue
	}
	l.log.Debug().Str("model", key.Model).Msg("loaded untextured model")
	return mesh, nil
}

// Unload frees the texture before the model; UnloadModel leaves material
// textures alone.
func (l *MeshLoader) Unload(mesh Mesh) {
	if mesh.Textured {
		l.unloadTexture(mesh.Texture)
	}
	l.unloadModel(mesh.Model)
}

// releaseMeshes drops one cache reference per key.
func releaseMeshes[M any](cache *assets.Cache[M], keys []assets.Key) {
	for _, key := range keys {
		cache.Release(key)
	}
}
