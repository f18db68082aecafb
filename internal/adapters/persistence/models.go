package persistence

// LocalStoreModel represents the local_store table: a key-value store with
// the same contract as a browser's local storage. Snapshots, the version
// marker and the capability-probe sentinel all live here.
type LocalStoreModel struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;type:text;not null"`
}

func (LocalStoreModel) TableName() string {
	return "local_store"
}
