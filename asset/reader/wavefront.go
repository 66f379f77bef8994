package reader

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/karma/asset"
	"github.com/achilleasa/karma/log"
	"github.com/achilleasa/karma/mesh"
	"github.com/achilleasa/karma/types"
)

type wavefrontReader struct {
	logger log.Logger

	// Name of the first declared object or group.
	meshName string

	vertexList []types.Vec3
	triangles  [][3]uint32
	instances  []types.Transform

	// An error stack that provides additional error information when
	// object files include other files.
	errStack []string
}

// Create a new wavefront mesh reader.
func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger:   log.New("wavefront reader"),
		errStack: make([]string, 0),
	}
}

// Read mesh definition.
func (r *wavefrontReader) Read(res *asset.Resource) (*Result, error) {
	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	name := r.meshName
	if name == "" {
		name = res.Name()
	}

	m, err := mesh.New(name, r.vertexList, r.triangles)
	if err != nil {
		return nil, r.emitError(res.Path(), 0, "%s", err.Error())
	}

	r.logger.Infof(
		"parsed mesh %q in %d ms: %d vertices, %d triangles, %d instances",
		name, time.Since(start).Nanoseconds()/1e6, len(r.vertexList), len(r.triangles), len(r.instances),
	)
	return &Result{Mesh: m, Instances: r.instances}, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	switch {
	case file != "" && line > 0:
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	case file != "":
		errMsg = fmt.Sprintf("[%s] error: %s\n%s", file, msg, strings.Join(r.errStack, "\n"))
	default:
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return errors.New(strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse the wavefront object format. Only the geometry is kept: normals,
// texture coordinates and materials are ignored as vertex normals are
// recalculated from the topology.
func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int

	// Included files use 1-based indices relative to their own vertex
	// list. Tracking the vertex count at the start of each file lets
	// parseFace select the correct vertex.
	relVertexOffset := len(r.vertexList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			if r.meshName == "" {
				r.meshName = lineTokens[1]
			}
		case "f":
			triangles, err := r.parseFace(lineTokens, relVertexOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.triangles = append(r.triangles, triangles...)
		case "instance":
			instance, err := parseMeshInstance(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.instances = append(r.instances, instance)
		case "vn", "vt", "vp", "s", "l", "p", "usemtl", "mtllib":
			// Not needed for bounding volumes
		default:
			r.logger.Debugf(`[%s: %d] skipping unsupported statement "%s"`, res.Path(), lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}
	return nil
}

// Parse a face definition and triangulate it as a fan around its first
// vertex. Each vertex token may use any of the v, v/t, v//n or v/t/n forms;
// only the vertex index is used.
func (r *wavefrontReader) parseFace(lineTokens []string, relVertexOffset int) ([][3]uint32, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	indices := make([]uint32, 0, len(lineTokens)-1)
	for _, token := range lineTokens[1:] {
		vertexToken, _, _ := strings.Cut(token, "/")
		index, err := selectFaceCoordIndex(vertexToken, len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, err
		}
		indices = append(indices, uint32(index))
	}

	triangles := make([][3]uint32, 0, len(indices)-2)
	for i := 1; i+1 < len(indices); i++ {
		triangles = append(triangles, [3]uint32{indices[0], indices[i], indices[i+1]})
	}
	return triangles, nil
}

// Parse an instance definition. Definitions use the following format:
// instance [mesh_name] tX tY tZ yaw pitch roll sX sY sZ
// where:
// - tX, tY, tZ       : translation vector
// - yaw, pitch, roll : rotation angles in degrees
// - sX, sY, sZ       : scale
//
// Files describe a single mesh so the optional mesh name is not checked.
func parseMeshInstance(lineTokens []string) (types.Transform, error) {
	args := lineTokens[1:]
	switch len(args) {
	case 10:
		args = args[1:]
	case 9:
	default:
		return types.Transform{}, fmt.Errorf(`unsupported syntax for "instance"; expected 9 arguments: [mesh_name] tX tY tZ yaw pitch roll sX sY sZ; got %d`, len(args))
	}

	var values [9]float32
	for index := range values {
		v, err := strconv.ParseFloat(args[index], 32)
		if err != nil {
			return types.Transform{}, err
		}
		values[index] = float32(v)
	}

	toRadians := float32(math.Pi / 180.0)
	return types.Transform{
		Translation: types.Vec3{values[0], values[1], values[2]},
		Rotation:    types.QuatFromEuler(values[3]*toRadians, values[4]*toRadians, values[5]*toRadians),
		Scale:       types.Vec3{values[6], values[7], values[8]},
	}, nil
}

// Given a face vertex index calculate the offset into the vertex list.
// Wavefront format can also use negative indices to reference elements from
// the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	switch {
	case index == 0:
		return -1, fmt.Errorf("index out of bounds")
	case index < 0:
		vOffset = coordListLen + int(index)
	default:
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
