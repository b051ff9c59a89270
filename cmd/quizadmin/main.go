// quizadmin là CLI quản trị vai trò portal trên Firebase custom claims.
//
// Cách dùng:
//
//	quizadmin list-admins [--role=admin|operational] [--all]
//	quizadmin set-claim <email> [--role=admin|operational] [--unset]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// listPageSize là số user lấy mỗi trang khi duyệt danh bạ
const listPageSize = 1000

func usage() {
	fmt.Fprintln(os.Stderr, `Cách dùng:
  quizadmin list-admins [--role=admin|operational] [--all]
      Liệt kê user giữ vai trò portal. Mặc định: cả admin lẫn operational.
      --role   chỉ liệt kê một vai trò
      --all    liệt kê mọi user kèm cột vai trò

  quizadmin set-claim <email> [--role=admin|operational] [--unset]
      Cấp hoặc gỡ vai trò portal cho một user.
      --role   vai trò cần cấp/gỡ (mặc định: admin)
      --unset  gỡ vai trò thay vì cấp`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.NewConfig()
	if cfg == nil {
		fmt.Fprintln(os.Stderr, "Lỗi: không đọc được cấu hình")
		os.Exit(1)
	}
	if err := utility.InitFirebase(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Lỗi: không khởi tạo được Firebase: %v\n", err)
		os.Exit(1)
	}
	client, err := utility.GetFirebaseAuth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lỗi: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "list-admins":
		err = runListAdmins(ctx, client, os.Args[2:])
	case "set-claim":
		err = runSetClaim(ctx, client, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Lệnh '%s' không hợp lệ\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Lỗi: %v\n", err)
		os.Exit(1)
	}
}

// validRole kiểm tra tên vai trò portal hợp lệ
func validRole(role string) bool {
	return role == authmodels.RoleAdmin || role == authmodels.RoleOperational
}

// userRoles trả về các vai trò portal của một user từ custom claims
func userRoles(claims map[string]interface{}) []string {
	var roles []string
	for _, role := range []string{authmodels.RoleAdmin, authmodels.RoleOperational} {
		if granted, ok := claims[role].(bool); ok && granted {
			roles = append(roles, role)
		}
	}
	return roles
}

// runListAdmins duyệt danh bạ user theo trang và in ra các user giữ vai trò portal
func runListAdmins(ctx context.Context, client *auth.Client, args []string) error {
	fs := flag.NewFlagSet("list-admins", flag.ContinueOnError)
	roleFilter := fs.String("role", "", "chỉ liệt kê một vai trò (admin|operational)")
	all := fs.Bool("all", false, "liệt kê mọi user kèm cột vai trò")
	if err := fs.Parse(args); err != nil {
		usage()
		return err
	}
	if *roleFilter != "" && !validRole(*roleFilter) {
		usage()
		return fmt.Errorf("vai trò '%s' không hợp lệ, phải là admin|operational", *roleFilter)
	}

	fmt.Printf("%-40s %-28s %s\n", "EMAIL", "UID", "ROLES")

	count := 0
	pager := iterator.NewPager(client.Users(ctx, ""), listPageSize, "")
	for {
		var page []*auth.ExportedUserRecord
		nextToken, err := pager.NextPage(&page)
		if err != nil {
			return fmt.Errorf("lỗi duyệt danh bạ user: %v", err)
		}

		for _, user := range page {
			roles := userRoles(user.CustomClaims)

			switch {
			case *all:
				// In mọi user, kể cả không có vai trò
			case *roleFilter != "":
				if !utility.Contains(roles, *roleFilter) {
					continue
				}
			default:
				if len(roles) == 0 {
					continue
				}
			}

			roleCol := "-"
			if len(roles) > 0 {
				roleCol = strings.Join(roles, ",")
			}
			fmt.Printf("%-40s %-28s %s\n", user.Email, user.UID, roleCol)
			count++
		}

		if nextToken == "" {
			break
		}
	}

	fmt.Printf("\nTổng: %d user\n", count)
	return nil
}

// runSetClaim cấp hoặc gỡ một vai trò portal trong custom claims của user
func runSetClaim(ctx context.Context, client *auth.Client, args []string) error {
	if len(args) < 1 || len(args[0]) == 0 || args[0][0] == '-' {
		usage()
		return fmt.Errorf("thiếu email của user")
	}
	email := args[0]

	fs := flag.NewFlagSet("set-claim", flag.ContinueOnError)
	role := fs.String("role", authmodels.RoleAdmin, "vai trò cần cấp/gỡ (admin|operational)")
	unset := fs.Bool("unset", false, "gỡ vai trò thay vì cấp")
	if err := fs.Parse(args[1:]); err != nil {
		usage()
		return err
	}
	if !validRole(*role) {
		usage()
		return fmt.Errorf("vai trò '%s' không hợp lệ, phải là admin|operational", *role)
	}

	user, err := client.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("không tìm thấy user '%s': %v", email, err)
	}

	// Merge vào claims hiện có để không mất các key khác
	claims := map[string]interface{}{}
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	if *unset {
		delete(claims, *role)
	} else {
		claims[*role] = true
	}

	if err := client.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		return fmt.Errorf("không cập nhật được claims cho '%s': %v", email, err)
	}

	action := "Đã cấp"
	if *unset {
		action = "Đã gỡ"
	}
	fmt.Printf("%s vai trò '%s' cho %s (uid=%s)\n", action, *role, email, user.UID)
	fmt.Println("Lưu ý: user cần đăng nhập lại hoặc làm mới token để claims có hiệu lực")
	return nil
}
