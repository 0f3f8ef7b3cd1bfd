//go:build windows

package directory

import (
	"context"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"golang.org/x/sys/windows"
)

var (
	modNetapi32 = windows.NewLazySystemDLL("netapi32.dll")

	procNetUserEnum             = modNetapi32.NewProc("NetUserEnum")
	procNetUserSetInfo          = modNetapi32.NewProc("NetUserSetInfo")
	procNetLocalGroupGetMembers = modNetapi32.NewProc("NetLocalGroupGetMembers")
	procNetLocalGroupDelMembers = modNetapi32.NewProc("NetLocalGroupDelMembers")
)

const (
	nerrSuccess         = 0
	filterNormalAccount = 0x0002
	ufAccountDisable    = 0x0002
	maxPreferredLength  = 0xFFFFFFFF

	userInfoFlagsLevel = 1008
)

// userInfo1 mirrors the netapi32 USER_INFO_1 structure.
type userInfo1 struct {
	Name        *uint16
	Password    *uint16
	PasswordAge uint32
	Priv        uint32
	HomeDir     *uint16
	Comment     *uint16
	Flags       uint32
	ScriptPath  *uint16
}

// userInfo1008 mirrors the netapi32 USER_INFO_1008 structure.
type userInfo1008 struct {
	Flags uint32
}

// localGroupMembersInfo0 mirrors the netapi32 LOCALGROUP_MEMBERS_INFO_0
// structure.
type localGroupMembersInfo0 struct {
	Sid *windows.SID
}

// windowsService implements Service against the local security authority.
type windowsService struct{}

// Default returns the local identity service for this host.
func Default() (Service, error) {
	return windowsService{}, nil
}

func (windowsService) IsElevated() (bool, error) {
	adminSid, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false, fmt.Errorf("create administrators identifier: %w", err)
	}

	token := windows.GetCurrentProcessToken()
	if token.IsElevated() {
		return true, nil
	}

	member, err := token.IsMember(adminSid)
	if err != nil {
		return false, fmt.Errorf("check administrators membership: %w", err)
	}

	return member, nil
}

func (windowsService) Accounts(_ context.Context) ([]Account, error) {
	var (
		accounts     []Account
		buf          *byte
		entriesRead  uint32
		totalEntries uint32
		resumeHandle uint32
	)

	for {
		ret, _, _ := procNetUserEnum.Call(
			0, // local server
			1, // USER_INFO_1
			uintptr(filterNormalAccount),
			uintptr(unsafe.Pointer(&buf)),
			uintptr(maxPreferredLength),
			uintptr(unsafe.Pointer(&entriesRead)),
			uintptr(unsafe.Pointer(&totalEntries)),
			uintptr(unsafe.Pointer(&resumeHandle)),
		)
		if ret != nerrSuccess && ret != uintptr(windows.ERROR_MORE_DATA) {
			return nil, fmt.Errorf("enumerate local accounts: %w", syscall.Errno(ret))
		}

		if buf != nil {
			entries := unsafe.Slice((*userInfo1)(unsafe.Pointer(buf)), entriesRead)

			for i := range entries {
				account, err := snapshotAccount(&entries[i])
				if err != nil {
					_ = windows.NetApiBufferFree(buf)

					return nil, err
				}

				accounts = append(accounts, account)
			}

			_ = windows.NetApiBufferFree(buf)
			buf = nil
		}

		if ret != uintptr(windows.ERROR_MORE_DATA) {
			break
		}
	}

	return accounts, nil
}

// snapshotAccount converts a USER_INFO_1 entry into an Account, resolving the
// account's SID through the local authority.
func snapshotAccount(entry *userInfo1) (Account, error) {
	name := windows.UTF16PtrToString(entry.Name)

	winSid, _, _, err := windows.LookupSID("", name)
	if err != nil {
		return Account{}, fmt.Errorf("look up identifier for account %q: %w", name, err)
	}

	id, err := sid.Parse(winSid.String())
	if err != nil {
		return Account{}, fmt.Errorf("parse identifier for account %q: %w", name, err)
	}

	return Account{
		Name:    name,
		ID:      id,
		Enabled: entry.Flags&ufAccountDisable == 0,
	}, nil
}

func (windowsService) SetAccountEnabled(_ context.Context, name string, enabled bool) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return fmt.Errorf("encode account name %q: %w", name, err)
	}

	var buf *byte

	err = windows.NetUserGetInfo(nil, namePtr, 1, &buf)
	if err != nil {
		return fmt.Errorf("read flags for account %q: %w", name, err)
	}

	flags := (*userInfo1)(unsafe.Pointer(buf)).Flags

	_ = windows.NetApiBufferFree(buf)

	if enabled {
		flags &^= ufAccountDisable
	} else {
		flags |= ufAccountDisable
	}

	update := userInfo1008{Flags: flags}

	ret, _, _ := procNetUserSetInfo.Call(
		0,
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(userInfoFlagsLevel),
		uintptr(unsafe.Pointer(&update)),
		0, // parm_err
	)
	if ret != nerrSuccess {
		return fmt.Errorf("update flags for account %q: %w", name, syscall.Errno(ret))
	}

	return nil
}

func (windowsService) GroupMembers(_ context.Context, groupName string) ([]sid.ID, error) {
	groupPtr, err := windows.UTF16PtrFromString(groupName)
	if err != nil {
		return nil, fmt.Errorf("encode group name %q: %w", groupName, err)
	}

	var (
		members      []sid.ID
		buf          *byte
		entriesRead  uint32
		totalEntries uint32
		resumeHandle uintptr
	)

	for {
		ret, _, _ := procNetLocalGroupGetMembers.Call(
			0,
			uintptr(unsafe.Pointer(groupPtr)),
			0, // LOCALGROUP_MEMBERS_INFO_0
			uintptr(unsafe.Pointer(&buf)),
			uintptr(maxPreferredLength),
			uintptr(unsafe.Pointer(&entriesRead)),
			uintptr(unsafe.Pointer(&totalEntries)),
			uintptr(unsafe.Pointer(&resumeHandle)),
		)
		if ret != nerrSuccess && ret != uintptr(windows.ERROR_MORE_DATA) {
			return nil, fmt.Errorf("enumerate members of group %q: %w", groupName, syscall.Errno(ret))
		}

		if buf != nil {
			entries := unsafe.Slice((*localGroupMembersInfo0)(unsafe.Pointer(buf)), entriesRead)

			for i := range entries {
				id, err := sid.Parse(entries[i].Sid.String())
				if err != nil {
					_ = windows.NetApiBufferFree(buf)

					return nil, fmt.Errorf("parse member identifier in group %q: %w", groupName, err)
				}

				members = append(members, id)
			}

			_ = windows.NetApiBufferFree(buf)
			buf = nil
		}

		if ret != uintptr(windows.ERROR_MORE_DATA) {
			break
		}
	}

	return members, nil
}

func (windowsService) RemoveGroupMember(_ context.Context, groupName string, member sid.ID) error {
	groupPtr, err := windows.UTF16PtrFromString(groupName)
	if err != nil {
		return fmt.Errorf("encode group name %q: %w", groupName, err)
	}

	winSid, err := windows.StringToSid(member.String())
	if err != nil {
		return fmt.Errorf("encode member identifier %s: %w", member, err)
	}

	entry := localGroupMembersInfo0{Sid: winSid}

	ret, _, _ := procNetLocalGroupDelMembers.Call(
		0,
		uintptr(unsafe.Pointer(groupPtr)),
		0, // LOCALGROUP_MEMBERS_INFO_0
		uintptr(unsafe.Pointer(&entry)),
		1, // totalentries
	)
	if ret != nerrSuccess {
		return fmt.Errorf(
			"remove member %s from group %q: %w",
			member,
			groupName,
			syscall.Errno(ret),
		)
	}

	return nil
}

func (windowsService) LookupWellKnownGroup(_ context.Context, group sid.ID) (string, error) {
	winSid, err := windows.StringToSid(group.String())
	if err != nil {
		return "", fmt.Errorf("encode group identifier %s: %w", group, err)
	}

	name, _, _, err := winSid.LookupAccount("")
	if err != nil {
		return "", fmt.Errorf("translate group identifier %s: %w", group, err)
	}

	return name, nil
}
