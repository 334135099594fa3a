// Package translator turns GLSL ES 3.00 sources into the shading language
// of the current context.
package translator

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sync"

	"github.com/richinsley/gotriangle/gpu"
	gst "github.com/richinsley/goshadertranslator"
)

// NameMap maps declared identifiers to the names the translated code uses.
// Identifiers missing from it are unchanged.
type NameMap map[string]string

// Name returns the translated name of a declared identifier.
func (m NameMap) Name(declared string) string {
	if mapped, ok := m[declared]; ok && mapped != "" {
		return mapped
	}
	return declared
}

// Result is a translated stage.
type Result struct {
	Code  string
	Names NameMap
}

type Translator interface {
	Translate(source string, stage gpu.StageKind) (*Result, error)
}

// ANGLE validates and translates through goshadertranslator. The underlying
// runtime is created on first use and shared by every ANGLE value.
type ANGLE struct {
	Target gpu.Target
}

var (
	angleOnce sync.Once
	angle     *gst.ShaderTranslator
	angleErr  error
)

func getANGLE() (*gst.ShaderTranslator, error) {
	angleOnce.Do(func() {
		ctx := context.Background()
		angle, angleErr = gst.NewShaderTranslator(ctx)
		if angleErr == nil {
			log.Printf("Shader translator initialized")
		}
	})
	return angle, angleErr
}

func (a ANGLE) Translate(source string, stage gpu.StageKind) (*Result, error) {
	st, err := getANGLE()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if a.Target == gpu.TargetESSL300 {
		outputFormat = gst.OutputFormatESSL
	}
	translated, err := st.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Code:  translated.Code,
		Names: make(NameMap, len(translated.Variables)),
	}
	for name, v := range translated.Variables {
		res.Names[name] = v.MappedName
	}
	return res, nil
}

var versionDirective = regexp.MustCompile(`(?m)^[ \t]*#version[ \t]+300[ \t]+es[ \t]*$`)

// Directive only rewrites the #version line. It is enough for sources that
// use the common subset of GLSL ES 3.00 and GLSL 4.10, and needs no runtime.
type Directive struct {
	Target gpu.Target
}

func (d Directive) Translate(source string, stage gpu.StageKind) (*Result, error) {
	if d.Target == gpu.TargetESSL300 {
		return &Result{Code: source}, nil
	}
	if !versionDirective.MatchString(source) {
		return nil, fmt.Errorf("%s shader: missing #version 300 es directive", stage)
	}
	return &Result{Code: versionDirective.ReplaceAllString(source, "#version 410 core")}, nil
}

// ForDevice picks the translator for a device. With translate set, sources go
// through ANGLE; otherwise only the #version line is rewritten.
func ForDevice(caps gpu.Capability, translate bool) Translator {
	if translate {
		return ANGLE{Target: caps.Target}
	}
	return Directive{Target: caps.Target}
}
