package openglhelper

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader wraps a linked OpenGL program. Uniform locations are cached on
// first use, so the per-frame setters avoid repeated name lookups.
type Shader struct {
	ID       uint32
	uniforms map[string]int32
}

// NewShader creates a shader program from vertex and fragment shader source
func NewShader(vertexShaderSource, fragmentShaderSource string) (*Shader, error) {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}

	return &Shader{
		ID:       program,
		uniforms: make(map[string]int32),
	}, nil
}

// compileShader compiles a single shader stage
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to compile shader: %v", infoLog)
	}

	return shader, nil
}

// newProgram links vertex and fragment stages into a program
func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to link program: %v", infoLog)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the shader program
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
}

func (s *Shader) uniformLocation(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.uniforms[name] = loc
	return loc
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.uniformLocation(name), value)
}

// SetVec3 sets a vec3 uniform
func (s *Shader) SetVec3(name string, vec mgl32.Vec3) {
	gl.Uniform3f(s.uniformLocation(name), vec[0], vec[1], vec[2])
}

// SetMat4 sets a mat4 uniform
func (s *Shader) SetMat4(name string, mat mgl32.Mat4) {
	gl.UniformMatrix4fv(s.uniformLocation(name), 1, false, &mat[0])
}
