package discovery

import "strings"

// EncodeTXT builds the TXT records for a server announcement: the endpoint
// path and the comma-separated capability list.
func EncodeTXT(info ServerInfo) []string {
	txt := make([]string, 0, 2)
	if info.Path != "" {
		txt = append(txt, "path="+info.Path)
	}
	if len(info.Capabilities) > 0 {
		txt = append(txt, "caps="+strings.Join(info.Capabilities, ","))
	}
	return txt
}

// ParseTXT extracts the endpoint path and capabilities from TXT records.
func ParseTXT(txt []string) (path string, caps []string) {
	for _, record := range txt {
		key, value, found := strings.Cut(record, "=")
		if !found {
			continue
		}
		switch key {
		case "path":
			path = value
		case "caps":
			if value != "" {
				caps = strings.Split(value, ",")
			}
		}
	}
	return path, caps
}
