// Command provision creates user accounts directly in the database.
// The HTTP service never creates users; this tool is the provisioning step.
// The generated API key is printed exactly once and not recoverable later.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"net/mail"
	"os"
	"strings"

	"user-directory/internal/database"
	"user-directory/internal/model"
	"user-directory/internal/service"
	"user-directory/internal/store"
)

var (
	newPgxPool   = database.NewPgxPool
	hashPassword = service.HashPassword
	createUser   = store.CreateUser
	exitFunc     = os.Exit
)

func newAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "sk_" + hex.EncodeToString(buf), nil
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("provision", flag.ContinueOnError)
	username := fs.String("username", "", "使用者名稱（必填）")
	email := fs.String("email", "", "使用者 Email（必填）")
	password := fs.String("password", "", "使用者密碼（必填）")
	admin := fs.Bool("admin", false, "是否為管理員")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("username、email、password 均為必填")
	}

	*email = strings.ToLower(*email)
	if _, err := mail.ParseAddress(*email); err != nil {
		return fmt.Errorf("無效的 email: %v", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	hash, err := hashPassword(*password)
	if err != nil {
		return fmt.Errorf("密碼雜湊失敗: %v", err)
	}

	apiKey, err := newAPIKey()
	if err != nil {
		return fmt.Errorf("API key 產生失敗: %v", err)
	}

	role := model.RoleUser
	if *admin {
		role = model.RoleAdmin
	}

	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	user, err := createUser(context.Background(), db, &model.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		Role:         role,
		APIKey:       apiKey,
	})
	if err != nil {
		return fmt.Errorf("建立使用者失敗: %v", err)
	}

	fmt.Fprintf(out, "created user id=%d username=%s role=%s\napi_key=%s\n",
		user.ID, user.Username, user.Role, apiKey)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
