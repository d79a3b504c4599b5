package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/geometry"
	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/pkg/material"
	"github.com/df07/skirt/pkg/scene"
)

var logger = log.New("loaders")

var (
	// ErrUnknownCommand is wrapped by errors for unrecognized top-level
	// commands, shapes, texture and material types
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnknownParameter is wrapped by errors for unrecognized keys inside
	// a command
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrEmptyWorld is returned for descriptions without any shapes
	ErrEmptyWorld = errors.New("scene: description has no shapes")
)

// ParseError reports a problem at a position in a scene description
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error // Optional sentinel, see ErrUnknownCommand
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scene: %d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func nodeErrorf(n *yaml.Node, format string, args ...interface{}) error {
	return &ParseError{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

func unknownf(sentinel error, n *yaml.Node, format string, args ...interface{}) error {
	return &ParseError{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// Description is a parsed scene description
type Description struct {
	Camera          geometry.CameraConfig
	Width           int
	Height          int
	Filename        string // Output filename requested by Film, may be empty
	SamplesPerPixel int
	MaxDepth        int
	Background      scene.Background
	Seed            int64
	Shapes          []geometry.Shape
}

// SamplingConfig returns the film and integrator settings of the description
func (d *Description) SamplingConfig() scene.SamplingConfig {
	return scene.SamplingConfig{
		Width:           d.Width,
		Height:          d.Height,
		SamplesPerPixel: d.SamplesPerPixel,
		MaxDepth:        d.MaxDepth,
	}
}

// Scene builds the preprocessed scene. Callers may adjust the resolution or
// sampling fields of the description first.
func (d *Description) Scene() *scene.Scene {
	s := &scene.Scene{
		CameraConfig:   d.Camera,
		Shapes:         d.Shapes,
		Background:     d.Background,
		SamplingConfig: d.SamplingConfig(),
		Seed:           d.Seed,
	}
	s.Preprocess()
	return s
}

// Commands are processed in this order regardless of their order in the
// document, so textures can depend on the seed and shapes on materials.
var commandOrder = []string{"Seed", "LookAt", "Camera", "Film", "Integrator", "Textures", "Materials", "World"}

// descriptionParser holds the named resources defined so far
type descriptionParser struct {
	desc      *Description
	baseDir   string
	textures  map[string]material.Texture
	materials map[string]material.Material
}

// LoadDescription loads and parses a YAML scene description. Image textures
// are resolved relative to the file's directory.
func LoadDescription(filename string) (*Description, error) {
	if err := validateDescriptionPath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene description: %w", err)
	}
	defer file.Close()

	desc, err := ParseDescription(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// validateDescriptionPath rejects paths that cannot be scene descriptions
func validateDescriptionPath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("invalid file path")
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return nil
	}
	return fmt.Errorf("invalid file type: only .yaml and .yml scene descriptions are allowed")
}

// ParseDescription parses a YAML scene description from r
func ParseDescription(r io.Reader, baseDir string) (*Description, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyWorld
		}
		return nil, fmt.Errorf("scene: %w", err)
	}

	root := resolve(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return nil, nodeErrorf(root, "description must be a mapping of commands")
	}

	defaults := scene.DefaultSamplingConfig()
	p := &descriptionParser{
		desc: &Description{
			Camera: geometry.CameraConfig{
				Center: core.NewVec3(0, 0, 0),
				LookAt: core.NewVec3(0, 0, -1),
				Up:     core.NewVec3(0, 1, 0),
				VFov:   90,
			},
			Width:           defaults.Width,
			Height:          defaults.Height,
			SamplesPerPixel: defaults.SamplesPerPixel,
			MaxDepth:        defaults.MaxDepth,
			Background:      scene.SkyBackground(),
		},
		baseDir:   baseDir,
		textures:  make(map[string]material.Texture),
		materials: make(map[string]material.Material),
	}

	commands := make(map[string]command)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, value := root.Content[i], resolve(root.Content[i+1])
		name, subtype, _ := strings.Cut(keyNode.Value, ".")
		if !isCommand(name) {
			return nil, unknownf(ErrUnknownCommand, keyNode, "unknown command %q", keyNode.Value)
		}
		if prev, dup := commands[name]; dup {
			return nil, nodeErrorf(keyNode, "duplicate %s command, first defined at %d:%d", name, prev.key.Line, prev.key.Column)
		}
		commands[name] = command{key: keyNode, subtype: subtype, value: value}
	}

	for _, name := range commandOrder {
		cmd, ok := commands[name]
		if !ok {
			continue
		}
		if err := p.processCommand(name, cmd); err != nil {
			return nil, err
		}
	}

	if len(p.desc.Shapes) == 0 {
		return nil, ErrEmptyWorld
	}
	return p.desc, nil
}

type command struct {
	key     *yaml.Node
	subtype string
	value   *yaml.Node
}

func isCommand(name string) bool {
	for _, c := range commandOrder {
		if c == name {
			return true
		}
	}
	return false
}

// processCommand routes one top-level command
func (p *descriptionParser) processCommand(name string, cmd command) error {
	switch name {
	case "Seed":
		return p.parseSeed(cmd)
	case "LookAt":
		return p.parseLookAt(cmd)
	case "Camera":
		return p.parseCamera(cmd)
	case "Film":
		return p.parseFilm(cmd)
	case "Integrator":
		return p.parseIntegrator(cmd)
	case "Textures":
		return p.parseNamed(cmd, func(name string, n *yaml.Node) error {
			tex, err := p.parseTexture(n)
			if err != nil {
				return err
			}
			p.textures[name] = tex
			return nil
		})
	case "Materials":
		return p.parseNamed(cmd, func(name string, n *yaml.Node) error {
			mat, err := p.parseMaterial(n)
			if err != nil {
				return err
			}
			p.materials[name] = mat
			return nil
		})
	case "World":
		return p.parseWorld(cmd)
	}
	return unknownf(ErrUnknownCommand, cmd.key, "unknown command %q", name)
}

func noSubtype(cmd command) error {
	if cmd.subtype != "" {
		return unknownf(ErrUnknownCommand, cmd.key, "unknown command %q", cmd.key.Value)
	}
	return nil
}

func requireSubtype(cmd command, allowed string) error {
	if cmd.subtype != "" && cmd.subtype != allowed {
		return unknownf(ErrUnknownCommand, cmd.key, "unsupported %s type %q", strings.SplitN(cmd.key.Value, ".", 2)[0], cmd.subtype)
	}
	return nil
}

// parseSeed accepts an integer or any string, which is hashed
func (p *descriptionParser) parseSeed(cmd command) error {
	if err := noSubtype(cmd); err != nil {
		return err
	}
	if cmd.value.Kind != yaml.ScalarNode {
		return nodeErrorf(cmd.value, "seed must be a scalar")
	}
	if seed, err := strconv.ParseInt(cmd.value.Value, 10, 64); err == nil {
		p.desc.Seed = seed
	} else {
		p.desc.Seed = scene.Seed(cmd.value.Value)
	}
	return nil
}

func (p *descriptionParser) parseLookAt(cmd command) error {
	if err := noSubtype(cmd); err != nil {
		return err
	}
	obj, err := newObject(cmd.value, "from", "to", "up")
	if err != nil {
		return err
	}
	cam := &p.desc.Camera
	if cam.Center, err = obj.getVec3("from", cam.Center); err != nil {
		return err
	}
	if cam.LookAt, err = obj.getVec3("to", cam.LookAt); err != nil {
		return err
	}
	if cam.Up, err = obj.getVec3("up", cam.Up); err != nil {
		return err
	}
	if cam.Center == cam.LookAt {
		return nodeErrorf(cmd.value, "from and to must differ")
	}
	if cam.Up.Cross(cam.Center.Subtract(cam.LookAt)).IsZero() {
		n := obj.get("up")
		if n == nil {
			n = cmd.value
		}
		return nodeErrorf(n, "up must not be parallel to the view direction")
	}
	return nil
}

func (p *descriptionParser) parseCamera(cmd command) error {
	if err := requireSubtype(cmd, "perspective"); err != nil {
		return err
	}
	obj, err := newObject(cmd.value, "fov", "aperture", "focusDistance")
	if err != nil {
		return err
	}
	cam := &p.desc.Camera
	if cam.VFov, err = obj.getFloat("fov", cam.VFov); err != nil {
		return err
	}
	if cam.VFov <= 0 || cam.VFov >= 180 {
		return nodeErrorf(obj.get("fov"), "fov must be in (0, 180)")
	}
	if cam.Aperture, err = obj.getFloat("aperture", 0); err != nil {
		return err
	}
	cam.FocusDistance, err = obj.getFloat("focusDistance", 0)
	return err
}

func (p *descriptionParser) parseFilm(cmd command) error {
	if err := requireSubtype(cmd, "image"); err != nil {
		return err
	}
	obj, err := newObject(cmd.value, "filename", "resolution")
	if err != nil {
		return err
	}
	if p.desc.Filename, err = obj.getString("filename", ""); err != nil {
		return err
	}
	if n := obj.get("resolution"); n != nil {
		res, err := parseFloats(n, 2)
		if err != nil {
			return err
		}
		if res[0] < 1 || res[1] < 1 {
			return nodeErrorf(n, "resolution must be positive")
		}
		p.desc.Width, p.desc.Height = int(res[0]), int(res[1])
	}
	return nil
}

func (p *descriptionParser) parseIntegrator(cmd command) error {
	if err := requireSubtype(cmd, "path"); err != nil {
		return err
	}
	obj, err := newObject(cmd.value, "samples", "maxDepth", "background")
	if err != nil {
		return err
	}
	if p.desc.SamplesPerPixel, err = obj.getInt("samples", p.desc.SamplesPerPixel); err != nil {
		return err
	}
	if p.desc.SamplesPerPixel < 1 {
		return nodeErrorf(obj.get("samples"), "samples must be at least 1")
	}
	if p.desc.MaxDepth, err = obj.getInt("maxDepth", p.desc.MaxDepth); err != nil {
		return err
	}
	if p.desc.MaxDepth < 0 {
		return nodeErrorf(obj.get("maxDepth"), "maxDepth must not be negative")
	}
	if n := obj.get("background"); n != nil {
		if p.desc.Background, err = parseBackground(n); err != nil {
			return err
		}
	}
	return nil
}

// parseBackground accepts a name, a solid color or a {bottom, top} gradient
func parseBackground(n *yaml.Node) (scene.Background, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		bg, ok := scene.BackgroundByName(n.Value)
		if !ok {
			return nil, unknownf(ErrUnknownCommand, n, "unknown background %q", n.Value)
		}
		return bg, nil
	case yaml.SequenceNode:
		c, err := parseVec3(n)
		if err != nil {
			return nil, err
		}
		return &scene.SolidBackground{Radiance: c}, nil
	}

	obj, err := newObject(n, "bottom", "top")
	if err != nil {
		return nil, err
	}
	sky := scene.SkyBackground()
	bottom, err := obj.getVec3("bottom", sky.Bottom)
	if err != nil {
		return nil, err
	}
	top, err := obj.getVec3("top", sky.Top)
	if err != nil {
		return nil, err
	}
	return &scene.GradientBackground{Bottom: bottom, Top: top}, nil
}

// parseNamed walks a name -> definition mapping in document order
func (p *descriptionParser) parseNamed(cmd command, define func(name string, n *yaml.Node) error) error {
	if err := noSubtype(cmd); err != nil {
		return err
	}
	if cmd.value.Kind != yaml.MappingNode {
		return nodeErrorf(cmd.value, "%s must be a mapping of names to definitions", cmd.key.Value)
	}
	for i := 0; i+1 < len(cmd.value.Content); i += 2 {
		if err := define(cmd.value.Content[i].Value, resolve(cmd.value.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// parseTextureRef accepts a texture name, a constant color or an inline
// texture definition
func (p *descriptionParser) parseTextureRef(n *yaml.Node) (material.Texture, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		tex, ok := p.textures[n.Value]
		if !ok {
			return nil, nodeErrorf(n, "undefined texture %q", n.Value)
		}
		return tex, nil
	case yaml.SequenceNode:
		c, err := parseVec3(n)
		if err != nil {
			return nil, err
		}
		return material.NewConstantTexture(c), nil
	}
	return p.parseTexture(n)
}

func (p *descriptionParser) parseTexture(n *yaml.Node) (material.Texture, error) {
	obj, err := newObject(n, "type", "color", "even", "odd", "scale", "filename", "width", "height", "top", "bottom")
	if err != nil {
		return nil, err
	}
	typ, err := obj.requireString("type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case "constant":
		c, err := obj.requireVec3("color")
		if err != nil {
			return nil, err
		}
		return material.NewConstantTexture(c), nil
	case "checker":
		even, err := p.requireTextureRef(obj, "even")
		if err != nil {
			return nil, err
		}
		odd, err := p.requireTextureRef(obj, "odd")
		if err != nil {
			return nil, err
		}
		return material.NewCheckerTexture(even, odd), nil
	case "noise":
		scale, err := obj.getFloat("scale", 1)
		if err != nil {
			return nil, err
		}
		return material.NewNoiseTexture(scale, core.NewSeededSampler(p.desc.Seed)), nil
	case "image":
		filename, err := obj.requireString("filename")
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(p.baseDir, filename)
		}
		return LoadImageTexture(filename), nil
	case "uv":
		w, err := obj.getPositiveInt("width", 256)
		if err != nil {
			return nil, err
		}
		h, err := obj.getPositiveInt("height", 256)
		if err != nil {
			return nil, err
		}
		return material.NewUVDebugTexture(w, h), nil
	case "gradient":
		h, err := obj.getPositiveInt("height", 256)
		if err != nil {
			return nil, err
		}
		top, err := obj.requireVec3("top")
		if err != nil {
			return nil, err
		}
		bottom, err := obj.requireVec3("bottom")
		if err != nil {
			return nil, err
		}
		return material.NewGradientTexture(h, top, bottom), nil
	}
	return nil, unknownf(ErrUnknownCommand, obj.get("type"), "unknown texture type %q", typ)
}

func (p *descriptionParser) requireTextureRef(obj *object, key string) (material.Texture, error) {
	n := obj.get(key)
	if n == nil {
		return nil, nodeErrorf(obj.node, "missing %q", key)
	}
	return p.parseTextureRef(n)
}

// parseMaterialRef accepts a material name or an inline definition
func (p *descriptionParser) parseMaterialRef(n *yaml.Node) (material.Material, error) {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		mat, ok := p.materials[n.Value]
		if !ok {
			return nil, nodeErrorf(n, "undefined material %q", n.Value)
		}
		return mat, nil
	}
	return p.parseMaterial(n)
}

func (p *descriptionParser) parseMaterial(n *yaml.Node) (material.Material, error) {
	obj, err := newObject(n, "type", "albedo", "fuzz", "ri", "emit")
	if err != nil {
		return nil, err
	}
	typ, err := obj.requireString("type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case "lambertian":
		albedo, err := p.requireTextureRef(obj, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(albedo), nil
	case "metal":
		albedo, err := p.requireTextureRef(obj, "albedo")
		if err != nil {
			return nil, err
		}
		fuzz, err := obj.getFloat("fuzz", 0)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedMetal(albedo, fuzz), nil
	case "dielectric":
		ri, err := obj.getFloat("ri", 1.5)
		if err != nil {
			return nil, err
		}
		if ri <= 0 {
			return nil, nodeErrorf(obj.get("ri"), "ri must be positive")
		}
		return material.NewDielectric(ri), nil
	case "light":
		emit, err := p.requireTextureRef(obj, "emit")
		if err != nil {
			return nil, err
		}
		return material.NewTexturedDiffuseLight(emit), nil
	}
	return nil, unknownf(ErrUnknownCommand, obj.get("type"), "unknown material type %q", typ)
}

func (p *descriptionParser) requireMaterial(obj *object) (material.Material, error) {
	n := obj.get("material")
	if n == nil {
		return nil, nodeErrorf(obj.node, "missing %q", "material")
	}
	return p.parseMaterialRef(n)
}

func (p *descriptionParser) parseWorld(cmd command) error {
	if err := noSubtype(cmd); err != nil {
		return err
	}
	shapes, err := p.parseShapeList(cmd.value)
	if err != nil {
		return err
	}
	p.desc.Shapes = append(p.desc.Shapes, shapes...)
	return nil
}

func (p *descriptionParser) parseShapeList(n *yaml.Node) ([]geometry.Shape, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(n, "not a list of shapes")
	}
	shapes := make([]geometry.Shape, 0, len(n.Content))
	for _, item := range n.Content {
		shape, err := p.parseShape(item)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// parseShape parses a single-key mapping such as {sphere: {...}}
func (p *descriptionParser) parseShape(n *yaml.Node) (geometry.Shape, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, nodeErrorf(n, "shape must be a mapping with exactly one key")
	}
	keyNode, value := n.Content[0], resolve(n.Content[1])

	switch keyNode.Value {
	case "sphere":
		return p.parseSphere(value)
	case "rectXY":
		return p.parseRect(value, "x", "y", "z", func(a0, a1, b0, b1, k float64, mat material.Material) geometry.Shape {
			return geometry.NewRectXY(a0, a1, b0, b1, k, mat)
		})
	case "rectXZ":
		return p.parseRect(value, "x", "z", "y", func(a0, a1, b0, b1, k float64, mat material.Material) geometry.Shape {
			return geometry.NewRectXZ(a0, a1, b0, b1, k, mat)
		})
	case "rectYZ":
		return p.parseRect(value, "y", "z", "x", func(a0, a1, b0, b1, k float64, mat material.Material) geometry.Shape {
			return geometry.NewRectYZ(a0, a1, b0, b1, k, mat)
		})
	case "box":
		return p.parseBox(value)
	case "quad":
		return p.parseQuad(value)
	case "triangle":
		return p.parseTriangle(value)
	case "transform":
		return p.parseTransform(value)
	case "flip":
		inner, err := p.parseShape(value)
		if err != nil {
			return nil, err
		}
		return geometry.NewFlipNormals(inner), nil
	case "list":
		shapes, err := p.parseShapeList(value)
		if err != nil {
			return nil, err
		}
		if len(shapes) == 0 {
			return nil, nodeErrorf(value, "list must not be empty")
		}
		return geometry.NewShapeList(shapes...), nil
	}
	return nil, unknownf(ErrUnknownCommand, keyNode, "unknown shape %q", keyNode.Value)
}

func (p *descriptionParser) parseSphere(n *yaml.Node) (geometry.Shape, error) {
	obj, err := newObject(n, "center", "radius", "material")
	if err != nil {
		return nil, err
	}
	center, err := obj.requireVec3("center")
	if err != nil {
		return nil, err
	}
	radius, err := obj.requireFloat("radius")
	if err != nil {
		return nil, err
	}
	mat, err := p.requireMaterial(obj)
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, radius, mat), nil
}

// rectBuilder matches the argument order of the rectangle constructors
type rectBuilder func(a0, a1, b0, b1, k float64, mat material.Material) geometry.Shape

// parseRect reads the two in-plane ranges a and b and the fixed coordinate k
func (p *descriptionParser) parseRect(n *yaml.Node, a, b, k string, build rectBuilder) (geometry.Shape, error) {
	obj, err := newObject(n, a, b, k, "material")
	if err != nil {
		return nil, err
	}

	var ranges [2][]float64
	for i, key := range []string{a, b} {
		rn := obj.get(key)
		if rn == nil {
			return nil, nodeErrorf(obj.node, "missing %q", key)
		}
		r, err := parseFloats(rn, 2)
		if err != nil {
			return nil, err
		}
		if r[0] >= r[1] {
			return nil, nodeErrorf(rn, "%s range must be increasing", key)
		}
		ranges[i] = r
	}
	offset, err := obj.requireFloat(k)
	if err != nil {
		return nil, err
	}
	mat, err := p.requireMaterial(obj)
	if err != nil {
		return nil, err
	}
	return build(ranges[0][0], ranges[0][1], ranges[1][0], ranges[1][1], offset, mat), nil
}

func (p *descriptionParser) parseBox(n *yaml.Node) (geometry.Shape, error) {
	obj, err := newObject(n, "min", "max", "material")
	if err != nil {
		return nil, err
	}
	pmin, err := obj.requireVec3("min")
	if err != nil {
		return nil, err
	}
	pmax, err := obj.requireVec3("max")
	if err != nil {
		return nil, err
	}
	if pmin.X > pmax.X || pmin.Y > pmax.Y || pmin.Z > pmax.Z {
		return nil, nodeErrorf(obj.get("max"), "max must not be below min")
	}
	mat, err := p.requireMaterial(obj)
	if err != nil {
		return nil, err
	}
	return geometry.NewBox(pmin, pmax, mat), nil
}

func (p *descriptionParser) parseQuad(n *yaml.Node) (geometry.Shape, error) {
	obj, err := newObject(n, "corner", "u", "v", "material")
	if err != nil {
		return nil, err
	}
	corner, err := obj.requireVec3("corner")
	if err != nil {
		return nil, err
	}
	u, err := obj.requireVec3("u")
	if err != nil {
		return nil, err
	}
	v, err := obj.requireVec3("v")
	if err != nil {
		return nil, err
	}
	if u.Cross(v).LengthSquared() == 0 {
		return nil, nodeErrorf(obj.get("v"), "quad edges must not be parallel")
	}
	mat, err := p.requireMaterial(obj)
	if err != nil {
		return nil, err
	}
	return geometry.NewQuad(corner, u, v, mat), nil
}

func (p *descriptionParser) parseTriangle(n *yaml.Node) (geometry.Shape, error) {
	obj, err := newObject(n, "vertices", "material")
	if err != nil {
		return nil, err
	}
	vn := obj.get("vertices")
	if vn == nil {
		return nil, nodeErrorf(obj.node, "missing %q", "vertices")
	}
	vn = resolve(vn)
	if vn.Kind != yaml.SequenceNode || len(vn.Content) != 3 {
		return nil, nodeErrorf(vn, "triangle needs three vertices")
	}
	var vertices [3]core.Vec3
	for i, item := range vn.Content {
		if vertices[i], err = parseVec3(item); err != nil {
			return nil, err
		}
	}
	edge1, edge2 := vertices[1].Subtract(vertices[0]), vertices[2].Subtract(vertices[0])
	if edge1.Cross(edge2).LengthSquared() == 0 {
		return nil, nodeErrorf(vn, "degenerate triangle")
	}
	mat, err := p.requireMaterial(obj)
	if err != nil {
		return nil, err
	}
	return geometry.NewTriangle(vertices[0], vertices[1], vertices[2], mat), nil
}

// parseTransform reads translate, rotate (degrees about X, Y, Z) and scale
// (a vector or a uniform number) applied to a nested shape
func (p *descriptionParser) parseTransform(n *yaml.Node) (geometry.Shape, error) {
	obj, err := newObject(n, "translate", "rotate", "axis", "angle", "scale", "shape")
	if err != nil {
		return nil, err
	}
	translate, err := obj.getVec3("translate", core.Vec3{})
	if err != nil {
		return nil, err
	}
	rotate, err := obj.getVec3("rotate", core.Vec3{})
	if err != nil {
		return nil, err
	}
	rotate = rotate.Multiply(math.Pi / 180)

	var axis core.Vec3
	var angle float64
	if an := obj.get("axis"); an != nil {
		if axis, err = parseVec3(an); err != nil {
			return nil, err
		}
		if axis.IsZero() {
			return nil, nodeErrorf(an, "axis must not be zero")
		}
		if angle, err = obj.requireFloat("angle"); err != nil {
			return nil, err
		}
		angle *= math.Pi / 180
	} else if gn := obj.get("angle"); gn != nil {
		return nil, nodeErrorf(gn, "angle requires an axis")
	}

	scale := core.NewVec3(1, 1, 1)
	if sn := obj.get("scale"); sn != nil {
		if sn.Kind == yaml.ScalarNode {
			s, err := parseFloat(sn)
			if err != nil {
				return nil, err
			}
			scale = core.NewVec3(s, s, s)
		} else if scale, err = parseVec3(sn); err != nil {
			return nil, err
		}
		if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
			return nil, nodeErrorf(sn, "scale must not be zero")
		}
	}

	sn := obj.get("shape")
	if sn == nil {
		return nil, nodeErrorf(n, "missing %q", "shape")
	}
	inner, err := p.parseShape(sn)
	if err != nil {
		return nil, err
	}
	if axis.IsZero() {
		return geometry.NewTRS(translate, rotate, scale, inner), nil
	}
	m := core.Identity().
		Translate(translate).
		RotateX(rotate.X).
		RotateY(rotate.Y).
		RotateZ(rotate.Z).
		Rotate(axis, angle).
		Scale(scale)
	return geometry.NewTransform(m, inner), nil
}

// object gives keyed access to a mapping node
type object struct {
	node   *yaml.Node
	fields map[string]*yaml.Node
}

// newObject checks that n is a mapping whose keys are all in allowed
func newObject(n *yaml.Node, allowed ...string) (*object, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, nodeErrorf(n, "not a mapping")
	}
	obj := &object{node: n, fields: make(map[string]*yaml.Node)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		known := false
		for _, a := range allowed {
			if a == key.Value {
				known = true
				break
			}
		}
		if !known {
			return nil, unknownf(ErrUnknownParameter, key, "unknown parameter %q", key.Value)
		}
		obj.fields[key.Value] = resolve(n.Content[i+1])
	}
	return obj, nil
}

func (o *object) get(key string) *yaml.Node {
	return o.fields[key]
}

func (o *object) getFloat(key string, def float64) (float64, error) {
	n := o.get(key)
	if n == nil {
		return def, nil
	}
	return parseFloat(n)
}

func (o *object) requireFloat(key string) (float64, error) {
	n := o.get(key)
	if n == nil {
		return 0, nodeErrorf(o.node, "missing %q", key)
	}
	return parseFloat(n)
}

func (o *object) getInt(key string, def int) (int, error) {
	n := o.get(key)
	if n == nil {
		return def, nil
	}
	v, err := strconv.Atoi(n.Value)
	if n.Kind != yaml.ScalarNode || err != nil {
		return 0, nodeErrorf(n, "not an integer")
	}
	return v, nil
}

func (o *object) getPositiveInt(key string, def int) (int, error) {
	v, err := o.getInt(key, def)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, nodeErrorf(o.get(key), "%s must be at least 1", key)
	}
	return v, nil
}

func (o *object) getString(key, def string) (string, error) {
	n := o.get(key)
	if n == nil {
		return def, nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", nodeErrorf(n, "not a string")
	}
	return n.Value, nil
}

func (o *object) requireString(key string) (string, error) {
	if o.get(key) == nil {
		return "", nodeErrorf(o.node, "missing %q", key)
	}
	return o.getString(key, "")
}

func (o *object) getVec3(key string, def core.Vec3) (core.Vec3, error) {
	n := o.get(key)
	if n == nil {
		return def, nil
	}
	return parseVec3(n)
}

func (o *object) requireVec3(key string) (core.Vec3, error) {
	n := o.get(key)
	if n == nil {
		return core.Vec3{}, nodeErrorf(o.node, "missing %q", key)
	}
	return parseVec3(n)
}

// resolve follows aliases so anchors can be reused
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func parseFloat(n *yaml.Node) (float64, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		return 0, nodeErrorf(n, "not a number")
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil || math.IsNaN(v) {
		return 0, nodeErrorf(n, "not a number")
	}
	return v, nil
}

// parseFloats reads a sequence of exactly count numbers
func parseFloats(n *yaml.Node, count int) ([]float64, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(n, "expected a list of %d numbers", count)
	}
	if len(n.Content) != count {
		return nil, nodeErrorf(n, "expected %d numbers, got %d", count, len(n.Content))
	}
	out := make([]float64, count)
	for i, item := range n.Content {
		v, err := parseFloat(item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(n *yaml.Node) (core.Vec3, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode || len(n.Content) != 3 {
		return core.Vec3{}, nodeErrorf(n, "not a vector")
	}
	v, err := parseFloats(n, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
