package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Validator primitives. Every check runs through the transaction handle of
// the enclosing unit of work, never through an earlier connection, so the
// check and the subsequent write observe the same snapshot. Under concurrent
// writers a pre-check can still race another uncommitted transaction; the
// storage unique constraint remains the authoritative Conflict signal and
// insert errors are classified accordingly.

// recordExists reports whether a row of the given model with this primary
// key exists.
func recordExists(tx *gorm.DB, m interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// keyFree reports whether no row occupies the natural key column=value.
// excludeID, when nonzero, skips the row being updated so renaming an entity
// to its own current value never reports a false conflict.
func keyFree(tx *gorm.DB, m interface{}, column, value string, excludeID uint) (bool, error) {
	var count int64
	query := tx.Model(m).Where(fmt.Sprintf("%s = ?", column), value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// pairFree reports whether the composite pair (colA=idA, colB=idB) is not
// yet occupied.
func pairFree(tx *gorm.DB, m interface{}, colA string, idA uint, colB string, idB uint) (bool, error) {
	var count int64
	err := tx.Model(m).
		Where(fmt.Sprintf("%s = ? AND %s = ?", colA, colB), idA, idB).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// missingIDs returns the ids in want that are absent from got. Used after a
// batch fetch whose cardinality fell short, so the error can name the
// dangling references.
func missingIDs(want []uint, got map[uint]bool) []uint {
	var missing []uint
	for _, id := range want {
		if !got[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// dateRangeValid requires end strictly after start; equal instants fail.
func dateRangeValid(start, end time.Time) bool {
	return end.After(start)
}

// notSelfReference requires two ids to differ.
func notSelfReference(a, b uint) bool {
	return a != b
}
