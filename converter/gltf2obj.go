package converter

import (
	"math"
	"strconv"

	"github.com/binzume/objconv/geom"
	"github.com/binzume/objconv/gltfutil"
	"github.com/binzume/objconv/internal/logger"
	"github.com/binzume/objconv/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

const MaterialMarker = "#"

type GLTFToOBJOption struct {
	Scale   float64 // Default: 1.0
	KeepYUp bool
}

type gltfToObj struct {
	options *GLTFToOBJOption
	src     *gltf.Document
	objects []*mesh.MeshObjectData

	prevMaterial string
}

func NewGLTFToOBJConverter(options *GLTFToOBJOption) *gltfToObj {
	if options == nil {
		options = &GLTFToOBJOption{}
	}
	if options.Scale == 0 {
		options.Scale = 1.0
	}
	return &gltfToObj{options: options}
}

// MaterialID returns the material id of doc.Materials[idx] as used in facets.
func MaterialID(doc *gltf.Document, idx *uint32) string {
	if idx == nil {
		return MaterialMarker + "default"
	}
	if int(*idx) < len(doc.Materials) && doc.Materials[*idx].Name != "" {
		return MaterialMarker + doc.Materials[*idx].Name
	}
	return MaterialMarker + "material_" + strconv.Itoa(int(*idx))
}

func (c *gltfToObj) convertMaterial(idx *uint32) mesh.MaterialParam {
	p := mesh.NewMaterialParam()
	if idx == nil || int(*idx) >= len(c.src.Materials) {
		return p
	}
	m := c.src.Materials[*idx]
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		col := pbr.BaseColorFactorOrDefault()
		p.Texture.Color = [4]float64{float64(col[0]), float64(col[1]), float64(col[2]), float64(col[3])}
		p.Transparent = 1 - p.Texture.Color[3]
		if pbr.BaseColorTexture != nil {
			if img, ok := gltfutil.TextureImage(c.src, pbr.BaseColorTexture.Index); ok {
				p.Texture.Name = gltfutil.ImageName(c.src, img)
			}
		}
		metallic := float64(pbr.MetallicFactorOrDefault())
		p.Specmap.Color = [4]float64{metallic, metallic, metallic, 1}
		p.Shininess = 1 - float64(pbr.RoughnessFactorOrDefault())
	}
	if m.NormalTexture != nil && m.NormalTexture.Index != nil {
		if img, ok := gltfutil.TextureImage(c.src, *m.NormalTexture.Index); ok {
			p.Bumpmap.Name = gltfutil.ImageName(c.src, img)
		}
	}
	return p
}

func (c *gltfToObj) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(c.src.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	return c.src.Accessors[idx], nil
}

func (c *gltfToObj) convertPrimitive(p *gltf.Primitive) (*mesh.MeshFacetNode, error) {
	a, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("no POSITION attribute")
	}
	acr, err := c.accessor(a)
	if err != nil {
		return nil, err
	}
	pos, err := modeler.ReadPosition(c.src, acr, [][3]float32{})
	if err != nil {
		return nil, errors.Wrap(err, "read POSITION")
	}

	vertices := make([]geom.Vector3, len(pos))
	for i, v := range pos {
		vertices[i] = *geom.NewVector3FromArray(v)
	}

	normals := make([]geom.Vector3, len(pos))
	if a, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := c.accessor(a)
		if err != nil {
			return nil, err
		}
		n, err := modeler.ReadNormal(c.src, acr, [][3]float32{})
		if err != nil {
			return nil, errors.Wrap(err, "read NORMAL")
		}
		for i := range normals {
			if i < len(n) {
				normals[i] = *geom.NewVector3FromArray(n[i])
			}
		}
	} else {
		for i := range normals {
			normals[i] = geom.Vector3{Y: 1}
		}
	}

	// OBJ texture coordinates start at the bottom left.
	texcrds := make([]geom.UVMap, len(pos))
	if a, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := c.accessor(a)
		if err != nil {
			return nil, err
		}
		t, err := modeler.ReadTextureCoord(c.src, acr, [][2]float32{})
		if err != nil {
			return nil, errors.Wrap(err, "read TEXCOORD_0")
		}
		for i := range texcrds {
			if i < len(t) {
				texcrds[i] = geom.UVMap{U: float64(t[i][0]), V: 1 - float64(t[i][1])}
			}
		}
	}

	var indices []int
	if p.Indices != nil {
		acr, err := c.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		idx, err := modeler.ReadIndices(c.src, acr, []uint32{})
		if err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
		indices = make([]int, len(idx))
		for i, v := range idx {
			indices[i] = int(v)
		}
	} else {
		indices = make([]int, len(pos))
		for i := range indices {
			indices[i] = i
		}
	}

	f := mesh.NewMeshFacetNode(vertices, normals, texcrds, indices)
	f.MaterialID = MaterialID(c.src, p.Material)
	f.SameMaterial = f.MaterialID == c.prevMaterial
	f.MaterialParam = c.convertMaterial(p.Material)
	c.prevMaterial = f.MaterialID
	return f, nil
}

func (c *gltfToObj) convertMesh(name string, m *gltf.Mesh, trans *geom.AffineTrans) *mesh.MeshObjectData {
	obj := mesh.NewMeshObjectData(name)
	obj.AffineTrans = trans
	for i, p := range m.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			logger.Warn("skip non-triangle primitive", zap.String("mesh", name), zap.Int("primitive", i))
			continue
		}
		f, err := c.convertPrimitive(p)
		if err != nil {
			logger.Warn("skip primitive", zap.String("mesh", name), zap.Int("primitive", i), zap.Error(err))
			continue
		}
		obj.AddFacet(f)
	}
	return obj
}

func (c *gltfToObj) convertNode(idx uint32, parent *geom.AffineTrans, visited map[uint32]bool) {
	if int(idx) >= len(c.src.Nodes) || visited[idx] {
		return
	}
	visited[idx] = true
	n := c.src.Nodes[idx]
	trans := parent.Compose(gltfutil.NodeTransform(n))

	if n.Mesh != nil && int(*n.Mesh) < len(c.src.Meshes) {
		m := c.src.Meshes[*n.Mesh]
		name := n.Name
		if name == "" {
			name = m.Name
		}
		if name == "" {
			name = "node_" + strconv.Itoa(int(idx))
		}
		c.objects = append(c.objects, c.convertMesh(name, m, trans))
	}
	for _, child := range n.Children {
		c.convertNode(child, trans, visited)
	}
}

// rootNodes returns the nodes of the default scene, or every parentless node.
func (c *gltfToObj) rootNodes() []uint32 {
	if len(c.src.Scenes) > 0 {
		scene := 0
		if c.src.Scene != nil && int(*c.src.Scene) < len(c.src.Scenes) {
			scene = int(*c.src.Scene)
		}
		return c.src.Scenes[scene].Nodes
	}
	child := map[uint32]bool{}
	for _, n := range c.src.Nodes {
		for _, ch := range n.Children {
			child[ch] = true
		}
	}
	var roots []uint32
	for i := range c.src.Nodes {
		if !child[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// Convert returns one object per mesh node, in depth first order.
func (c *gltfToObj) Convert(src *gltf.Document) ([]*mesh.MeshObjectData, error) {
	if src == nil {
		return nil, errors.New("nil document")
	}
	c.src = src
	c.objects = nil
	c.prevMaterial = ""

	s := c.options.Scale
	root := geom.NewTRS(&geom.Vector3{}, mgl64.QuatIdent(), geom.NewVector3(s, s, s))
	if !c.options.KeepYUp {
		root.Rotate = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	}

	visited := map[uint32]bool{}
	for _, n := range c.rootNodes() {
		c.convertNode(n, root, visited)
	}
	logger.Debug("converted glTF", zap.Int("nodes", len(src.Nodes)), zap.Int("objects", len(c.objects)))
	return c.objects, nil
}
