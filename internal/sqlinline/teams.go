package sqlinline

const QInsertTeam = `--sql a88ca3be-c2fc-4c6e-a0c6-70f503bf2996
insert into teams (id, name, description, team_code, owner_id, max_members, current_members, status, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, 0, 'ACTIVE', now(), now());
`

const QSelectTeamByID = `--sql f5cb9836-a90c-4b55-8765-134ac8c1d35d
select id, name, coalesce(description, ''), team_code, owner_id, max_members, current_members, status, created_at, updated_at
from teams
where id = $1
limit 1;
`

const QSelectTeamByCode = `--sql c0c83104-b910-4335-9f22-d82c5670d731
select id, name, coalesce(description, ''), team_code, owner_id, max_members, current_members, status, created_at, updated_at
from teams
where team_code = $1
limit 1;
`

const QSelectTeamMembers = `--sql 0e2aa0c8-8ab9-4fc2-94cb-bcde5a52248d
select m.user_id, u.name, m.role, m.status, m.joined_at
from team_memberships m
join users u on u.id = m.user_id
where m.team_id = $1
order by m.joined_at;
`

// current_members is derived from the roster in one statement so the counter
// cannot drift from count(ACTIVE memberships) under concurrent joins.
const QSyncTeamMemberCount = `--sql 82c30f18-de9c-484c-b1be-bb16fd9a65ed
update teams
set current_members = (
        select count(*)
        from team_memberships m
        where m.team_id = teams.id
          and m.status = 'ACTIVE'
    ),
    updated_at = now()
where id = $1
returning current_members;
`

const QInsertMembership = `--sql 6d63a433-4327-47e1-894f-df725de7fcaa
insert into team_memberships (id, team_id, user_id, role, status, joined_at)
values ($1, $2, $3, $4, $5, now());
`

const QSelectMembership = `--sql 95fdc97f-36f3-4791-bef6-15676602a6d6
select id, team_id, user_id, role, status, joined_at
from team_memberships
where team_id = $1
  and user_id = $2
limit 1;
`

const QUpdateMembershipStatus = `--sql d270e397-2a3f-4055-a302-5559b2cc95dc
update team_memberships
set status = $3
where team_id = $1
  and user_id = $2;
`

const QSelectActiveMembershipsByUser = `--sql 44e9e9fc-2304-41e8-8f0b-9c4d42fbeacd
select id, team_id, user_id, role, status, joined_at
from team_memberships
where user_id = $1
  and status = 'ACTIVE'
order by joined_at;
`
