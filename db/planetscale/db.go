package planetscale

import (
	"database/sql"
	"fmt"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
	"github.com/weixing2014/twitter-clone/config"
	db2 "github.com/weixing2014/twitter-clone/db"
)

type PlanetScaleDB struct {
	*PostDB
	*CommentDB
	*FollowDB
	*TopicDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.DatabaseConfig) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%v&parseTime=true",
			cfg.User, cfg.Pass, cfg.Host, cfg.Name, cfg.TLS))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &PlanetScaleDB{
		PostDB:    getPostDB(sess),
		CommentDB: getCommentDB(sess),
		FollowDB:  getFollowDB(sess),
		TopicDB:   getTopicDB(sess),
		UserDB:    getUserDB(sess),
		sess:      sess,
		sqlDB:     sqlDB,
	}, nil
}

func (psdb *PlanetScaleDB) GetSQLDB() *sql.DB {
	return psdb.sqlDB
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
