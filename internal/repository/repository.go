package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Job         JobRepository
	Application ApplicationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Job:         NewJobRepo(db),
		Application: NewApplicationRepo(db),
	}
}

// BeginTx 开启事务
// 单元测试中 db 为 nil 时返回 (nil, nil)，调用方须对 nil tx 降级为非事务执行
func (r *Repository) BeginTx() (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 聚合
// tx 为 nil 时返回自身（配合 BeginTx 的测试降级行为）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		db:          tx,
		User:        NewUserRepo(tx),
		Job:         NewJobRepo(tx),
		Application: NewApplicationRepo(tx),
	}
}
