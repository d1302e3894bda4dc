package publish

// Topics builds topic names under a prefix.
//
//	{prefix}/system/status     retained online/offline, also the LWT
//	{prefix}/layout/{designID} retained layout document
type Topics struct {
	Prefix string
}

// SystemStatus is the retained connection status topic.
func (t Topics) SystemStatus() string {
	return t.Prefix + "/system/status"
}

// Layout is the retained topic for one design's layout.
func (t Topics) Layout(designID string) string {
	return t.Prefix + "/layout/" + designID
}

// AllLayouts is a wildcard matching every layout topic.
func (t Topics) AllLayouts() string {
	return t.Prefix + "/layout/+"
}
