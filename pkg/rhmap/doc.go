/*
Package rhmap implements an insertion ordered hash map using closed hashing
(open addressing) with linear probing. Collisions are resolved using what is
called 'robin hood hashing', and deletes use backward shifting instead of
tombstones. More information about these techniques can be found here:
	01) https://cs.uwaterloo.ca/research/tr/1986/CS-86-14.pdf
	02) https://www.sebastiansylvan.com/post/robin-hood-hashing-should-be-your-default-hash-table-implementation/
	03) http://codecapsule.com/2013/11/11/robin-hood-hashing/
	04) http://codecapsule.com/2013/11/17/robin-hood-hashing-backward-shift-deletion/
The basic principal is:
-----------------------
1) Calculate the hash value and home slot of the entry to be inserted
2) Search the position in the table linearly, keeping the distance from home
3) If we find an empty slot, we insert the entry with its distance there
4) If we encounter an entry which has a smaller distance than ours, swap them
   and keep probing on behalf of the entry we displaced

The table itself never owns any data. Entries live in a doubly linked list
kept in insertion order, and the table only holds pointers into that list.
Growing the table re-places the existing entries, so an *Entry handed out by
Find stays valid until the entry itself is erased or the map is cleared.

A Map is not safe for concurrent use.
*/
package rhmap
