package model

import "time"

// RelationPair 粉丝表和关注表共用的行视图，只带对比计算需要的两列
type RelationPair struct {
	Username     string    `gorm:"column:username"`
	DateFollowed time.Time `gorm:"column:date_followed"`
}

// AcquisitionDate 按天聚合 date_followed 的结果行
type AcquisitionDate struct {
	Date            time.Time `gorm:"column:acq_date"`
	FollowersGained int       `gorm:"column:gained"`
}
