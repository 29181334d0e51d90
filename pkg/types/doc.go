// Package types defines the persistence vocabulary shared by every scorg
// component: the Value union, Where predicates, Records, the Dao interface,
// the Student and Score entities with their record conversions, and the
// error taxonomy.
//
// A Dao is driven entirely by data:
//
//	recs, err := dao.Select(types.StudentFields(), types.StudentTable,
//	    []types.Where{types.NewWhere(types.FieldID, types.EQ, types.Text(id))})
//	students, err := types.StudentsFromRecords(recs)
package types
