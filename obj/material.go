package obj

// setupParams derives the MTL values from Param.
func (m *FacetMtl) setupParams() {
	texture := &m.Param.Texture
	specmap := &m.Param.Specmap
	bumpmap := &m.Param.Bumpmap

	if texture.IsSetTexture() {
		m.MapKd = CanonicalFileName(texture.Name)
	}
	if specmap.IsSetTexture() {
		m.MapKs = CanonicalFileName(specmap.Name)
	}
	if bumpmap.IsSetTexture() {
		m.MapBump = CanonicalFileName(bumpmap.Name)
	}

	m.Ka.X, m.Ka.Y, m.Ka.Z = 1, 1, 1
	m.Kd = texture.GetColor()
	m.Ks = specmap.GetColor()

	m.D = texture.Color[3]
	m.Ni = m.Param.Shininess * 10
	if m.Ni < 1.0 {
		m.Ni = 1.0
	}

	// 2: highlight on. Ray traced models are not supported.
	m.Illum = 2
}
