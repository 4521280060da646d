// Package tagstore 持久化 tag 优先级列表。列表只支持整体替换，
// 不支持局部修改：Replace 在一个事务里清空重写，读写之间不会观察到
// 半截更新。
package tagstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("无法创建目录，请检查权限问题: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("无法打开数据库，请检查权限问题: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("无法连接到数据库: %w", err)
	}

	s := &Store{db: db}

	if err := s.initTable(); err != nil {
		s.Close()
		return nil, fmt.Errorf("数据库创建失败: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initTable() error {
	schema := `
CREATE TABLE IF NOT EXISTS tags (
  position INTEGER PRIMARY KEY,  -- 顺序即优先级，0 为最高
  name     TEXT NOT NULL
);
	`
	_, err := s.db.Exec(schema)
	return err
}

// List 按优先级顺序返回全部 tag。
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM tags ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// Replace 用 newTags 原子地替换整个列表。
func (s *Store) Replace(ctx context.Context, newTags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tags`); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for i, name := range newTags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert tag %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Seed 在列表为空时写入默认值，已有内容则不动。
func (s *Store) Seed(ctx context.Context, defaults []string) error {
	existing, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.Replace(ctx, defaults)
}
