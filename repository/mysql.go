// mysql.go 终局战绩归档。写入失败只记日志，绝不影响对局流程
package repository

import (
	"database/sql"
	"encoding/json"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"go-auction/dto"
	"go-auction/logger"
)

var DB *sql.DB

// InitMySQL 未配置 MYSQL_DSN 时跳过归档功能
func InitMySQL() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		logger.L.Warn("⚠️ 未配置 MYSQL_DSN，战绩归档功能关闭")
		return
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		logger.L.Fatalf("MySQL 打开失败: %v", err)
	}
	if err := db.Ping(); err != nil {
		logger.L.Fatalf("MySQL 连接失败: %v", err)
	}
	DB = db
	logger.L.Info("✅ MySQL 连接成功")

	createTable := `CREATE TABLE IF NOT EXISTS game_results (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		room_id VARCHAR(16) NOT NULL,
		rankings JSON NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := DB.Exec(createTable); err != nil {
		logger.L.Errorf("❌ 创建 game_results 表失败: %v", err)
	}
}

// SaveGameResult 归档一局的最终排名
func SaveGameResult(roomID string, rankings []dto.PlayerRanking) {
	if DB == nil {
		return
	}
	data, err := json.Marshal(rankings)
	if err != nil {
		logger.L.Errorf("❌ 排名序列化失败: %v", err)
		return
	}
	if _, err := DB.Exec("INSERT INTO game_results (room_id, rankings) VALUES (?, ?)", roomID, data); err != nil {
		logger.L.Errorf("❌ 战绩写入失败 room=%s: %v", roomID, err)
		return
	}
	logger.L.Infof("✅ 战绩已归档 room=%s", roomID)
}
