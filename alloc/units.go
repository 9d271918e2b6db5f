package alloc

// KB returns n kibibytes in bytes.
func KB(n int) int { return n * 1024 }

// MB returns n mebibytes in bytes.
func MB(n int) int { return n * 1024 * 1024 }

// GB returns n gibibytes in bytes.
func GB(n int) int { return n * 1024 * 1024 * 1024 }
