package jumplist

import "github.com/joshuapare/jumpkit/internal/shelllink"

// normalizeLink flattens one shell link and guarantees the two derived keys
// every row carries, defaulting to empty strings when the link lacks them.
func normalizeLink(l *shelllink.Link) map[string]string {
	m := l.Normalize()
	name, _ := l.NameString()
	args, _ := l.CommandLineArguments()
	m["name_string"] = name
	m["command_line_arguments"] = args
	return m
}

// Normalize flattens the entry's attached shell link. Entries without a
// link contribute an empty mapping: the index row existed even when the
// embedded link was lost.
func (e *DestListEntry) Normalize() map[string]string {
	if e.Link == nil {
		return map[string]string{}
	}
	return normalizeLink(e.Link)
}

// Flatten produces one row per entry, in the list's MRU order.
func (d *DestList) Flatten() []map[string]string {
	rows := make([]map[string]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		rows = append(rows, e.Normalize())
	}
	return rows
}

// Flatten produces one row per embedded shell link. Categories without
// entries contribute nothing.
func (c *CustomDestinations) Flatten() []map[string]string {
	var rows []map[string]string
	for _, cat := range c.Categories {
		for _, l := range cat.Entries {
			rows = append(rows, normalizeLink(l))
		}
	}
	return rows
}

// Flatten merges the record's file-level identity into every payload row.
func (rec *Record) Flatten() []map[string]string {
	var rows []map[string]string
	switch {
	case rec.DestList != nil:
		rows = rec.DestList.Flatten()
	case rec.CustomDestinations != nil:
		rows = rec.CustomDestinations.Flatten()
	}
	for _, m := range rows {
		m["jumplist_file_path"] = rec.SourcePath
		m["app_id"] = rec.AppID
		m["app_name"] = rec.AppName
	}
	return rows
}
