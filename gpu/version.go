package gpu

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVersion reads the major and minor numbers from a GL_VERSION string.
// Desktop strings look like "4.1 Metal - 83.1" or "4.6.0 NVIDIA 535.54";
// ES strings start with "OpenGL ES ".
func ParseVersion(version string) (major, minor int, target Target, err error) {
	target = TargetGLSL410
	s := strings.TrimSpace(version)
	if rest, ok := strings.CutPrefix(s, "OpenGL ES"); ok {
		target = TargetESSL300
		// "OpenGL ES 3.2 Mesa", also "OpenGL ES-CM 1.1"
		s = strings.TrimLeft(rest, "-CM ")
	}
	if i := strings.IndexAny(s, " "); i >= 0 {
		s = s[:i]
	}
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return 0, 0, target, fmt.Errorf("malformed GL_VERSION %q", version)
	}
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, target, fmt.Errorf("malformed GL_VERSION %q", version)
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, target, fmt.Errorf("malformed GL_VERSION %q", version)
	}
	return major, minor, target, nil
}

// AtLeast reports whether the capability meets the given version.
func (c Capability) AtLeast(major, minor int) bool {
	if c.Major != major {
		return c.Major > major
	}
	return c.Minor >= minor
}

// Supported reports whether the context can run the demos: desktop 3.3
// core or OpenGL ES 3.0.
func (c Capability) Supported() bool {
	if c.Target == TargetESSL300 {
		return c.AtLeast(3, 0)
	}
	return c.AtLeast(MinMajor, MinMinor)
}
