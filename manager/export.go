package manager

import "github.com/windfab/towerdesk/record"

// ToTabularRows projects the store contents into export rows using the
// configured columns: field renaming and formatting for human consumption.
// The transform is pure and performs no I/O; with no columns configured,
// records are exported as copies of themselves.
func (m *Manager) ToTabularRows() []record.Record {
	all := m.store.All()
	rows := make([]record.Record, 0, len(all))

	for _, rec := range all {
		if len(m.cfg.Columns) == 0 {
			rows = append(rows, rec.Clone())
			continue
		}
		row := make(record.Record, len(m.cfg.Columns))
		for _, col := range m.cfg.Columns {
			value := rec[col.Field]
			if col.Format != nil {
				value = col.Format(value)
			}
			row[col.Header] = value
		}
		rows = append(rows, row)
	}
	return rows
}
