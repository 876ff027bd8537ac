package memberrepofake

import (
	"sync"

	"github.com/quickqueue/member-auth/members"
)

var _ members.Repo = (*FakeMemberRepo)(nil)

type FakeMemberRepo struct {
	members map[string]*members.Member // email to member
	lock    sync.RWMutex
}

func NewFakeMemberRepo() members.Repo {
	return &FakeMemberRepo{
		members: make(map[string]*members.Member),
	}
}

func (mr *FakeMemberRepo) GetByEmail(email string) (*members.Member, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	member, ok := mr.members[email]
	if !ok {
		return nil, members.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (mr *FakeMemberRepo) Save(member *members.Member) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	copied := *member
	mr.members[member.Email] = &copied
	return nil
}
